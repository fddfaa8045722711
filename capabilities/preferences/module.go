// Package preferences provides the "preferences" capability kind: the
// addon's settings class, of which an addon usually declares exactly one.
package preferences

import (
	"context"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/host"
)

// KindName is the block type modules declare preferences with.
const KindName = "preferences"

// Module implements the capability.Module interface for this package.
type Module struct{}

// Preferences is one declared preferences class. Its evaluated attributes
// are the default settings values.
type Preferences struct {
	Module   string
	Name     string
	Defaults map[string]cty.Value
}

// ClassID implements host.Extension.
func (p *Preferences) ClassID() host.ClassID {
	return host.ClassID{Kind: KindName, Name: p.Name}
}

// RegisterWithHost implements host.Extension.
func (p *Preferences) RegisterWithHost(ctx context.Context, h host.Host) error {
	return h.AddClass(ctx, p.ClassID(), p)
}

// UnregisterFromHost implements host.Extension.
func (p *Preferences) UnregisterFromHost(ctx context.Context, h host.Host) error {
	return h.RemoveClass(ctx, p.ClassID())
}

// Register registers the kind with the capability registry.
func (m *Module) Register(r *capability.Registry) {
	r.RegisterKind(&capability.Kind{
		Name:     KindName,
		Contract: reflect.TypeOf((*host.Extension)(nil)).Elem(),
		Build: func(moduleID, name string, attrs map[string]cty.Value) (any, error) {
			return &Preferences{
				Module:   moduleID,
				Name:     name,
				Defaults: attrs,
			}, nil
		},
	})
}
