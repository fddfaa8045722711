// Package panel provides the "panel" capability kind: a docked UI region the
// host draws once the class is registered.
package panel

import (
	"context"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/host"
)

// KindName is the block type modules declare panels with.
const KindName = "panel"

// Module implements the capability.Module interface for this package.
type Module struct{}

// Panel is one declared panel class.
type Panel struct {
	Module  string
	Name    string
	Label   string
	Space   string
	Region  string
	Options map[string]cty.Value
}

// ClassID implements host.Extension.
func (p *Panel) ClassID() host.ClassID {
	return host.ClassID{Kind: KindName, Name: p.Name}
}

// RegisterWithHost implements host.Extension.
func (p *Panel) RegisterWithHost(ctx context.Context, h host.Host) error {
	return h.AddClass(ctx, p.ClassID(), p)
}

// UnregisterFromHost implements host.Extension.
func (p *Panel) UnregisterFromHost(ctx context.Context, h host.Host) error {
	return h.RemoveClass(ctx, p.ClassID())
}

// Register registers the kind with the capability registry.
func (m *Module) Register(r *capability.Registry) {
	r.RegisterKind(&capability.Kind{
		Name:     KindName,
		Contract: reflect.TypeOf((*host.Extension)(nil)).Elem(),
		Build: func(moduleID, name string, attrs map[string]cty.Value) (any, error) {
			return &Panel{
				Module:  moduleID,
				Name:    name,
				Label:   capability.StringAttr(attrs, "label"),
				Space:   capability.StringAttr(attrs, "space"),
				Region:  capability.StringAttr(attrs, "region"),
				Options: attrs,
			}, nil
		},
	})
}
