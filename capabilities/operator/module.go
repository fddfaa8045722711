// Package operator provides the "operator" capability kind: a named action
// the host can invoke, the addon equivalent of a keyboard-driven command.
package operator

import (
	"context"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/host"
)

// KindName is the block type modules declare operators with.
const KindName = "operator"

// Module implements the capability.Module interface for this package.
type Module struct{}

// Operator is one declared operator class.
type Operator struct {
	Module      string
	Name        string
	Label       string
	Description string
	// Options keeps the remaining evaluated attributes opaque to the loader.
	Options map[string]cty.Value
}

// ClassID implements host.Extension.
func (o *Operator) ClassID() host.ClassID {
	return host.ClassID{Kind: KindName, Name: o.Name}
}

// RegisterWithHost implements host.Extension.
func (o *Operator) RegisterWithHost(ctx context.Context, h host.Host) error {
	return h.AddClass(ctx, o.ClassID(), o)
}

// UnregisterFromHost implements host.Extension.
func (o *Operator) UnregisterFromHost(ctx context.Context, h host.Host) error {
	return h.RemoveClass(ctx, o.ClassID())
}

// Register registers the kind with the capability registry.
func (m *Module) Register(r *capability.Registry) {
	r.RegisterKind(&capability.Kind{
		Name:     KindName,
		Contract: reflect.TypeOf((*host.Extension)(nil)).Elem(),
		Build: func(moduleID, name string, attrs map[string]cty.Value) (any, error) {
			return &Operator{
				Module:      moduleID,
				Name:        name,
				Label:       capability.StringAttr(attrs, "label"),
				Description: capability.StringAttr(attrs, "description"),
				Options:     attrs,
			}, nil
		},
	})
}
