// Package menu provides the "menu" capability kind, covering both regular
// and pie menus.
package menu

import (
	"context"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/host"
)

// KindName is the block type modules declare menus with.
const KindName = "menu"

// Module implements the capability.Module interface for this package.
type Module struct{}

// Menu is one declared menu class.
type Menu struct {
	Module  string
	Name    string
	Label   string
	// Style distinguishes pie menus from list menus; opaque to the loader.
	Style   string
	Options map[string]cty.Value
}

// ClassID implements host.Extension.
func (m *Menu) ClassID() host.ClassID {
	return host.ClassID{Kind: KindName, Name: m.Name}
}

// RegisterWithHost implements host.Extension.
func (m *Menu) RegisterWithHost(ctx context.Context, h host.Host) error {
	return h.AddClass(ctx, m.ClassID(), m)
}

// UnregisterFromHost implements host.Extension.
func (m *Menu) UnregisterFromHost(ctx context.Context, h host.Host) error {
	return h.RemoveClass(ctx, m.ClassID())
}

// Register registers the kind with the capability registry.
func (m *Module) Register(r *capability.Registry) {
	r.RegisterKind(&capability.Kind{
		Name:     KindName,
		Contract: reflect.TypeOf((*host.Extension)(nil)).Elem(),
		Build: func(moduleID, name string, attrs map[string]cty.Value) (any, error) {
			return &Menu{
				Module:  moduleID,
				Name:    name,
				Label:   capability.StringAttr(attrs, "label"),
				Style:   capability.StringAttr(attrs, "style"),
				Options: attrs,
			}, nil
		},
	})
}
