// Package keymap provides the "keymap" capability kind: a key binding that
// routes a host input event to a registered operator.
package keymap

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/host"
)

// KindName is the block type modules declare key bindings with.
const KindName = "keymap"

// Module implements the capability.Module interface for this package.
type Module struct{}

// Keymap is one declared key binding class.
type Keymap struct {
	Module   string
	Name     string
	Space    string
	Key      string
	Operator string
	Options  map[string]cty.Value
}

// ClassID implements host.Extension.
func (k *Keymap) ClassID() host.ClassID {
	return host.ClassID{Kind: KindName, Name: k.Name}
}

// RegisterWithHost implements host.Extension.
func (k *Keymap) RegisterWithHost(ctx context.Context, h host.Host) error {
	return h.AddClass(ctx, k.ClassID(), k)
}

// UnregisterFromHost implements host.Extension.
func (k *Keymap) UnregisterFromHost(ctx context.Context, h host.Host) error {
	return h.RemoveClass(ctx, k.ClassID())
}

// Register registers the kind with the capability registry.
func (m *Module) Register(r *capability.Registry) {
	r.RegisterKind(&capability.Kind{
		Name:     KindName,
		Contract: reflect.TypeOf((*host.Extension)(nil)).Elem(),
		Build: func(moduleID, name string, attrs map[string]cty.Value) (any, error) {
			key := capability.StringAttr(attrs, "key")
			if key == "" {
				return nil, fmt.Errorf("keymap %q in module %q declares no key", name, moduleID)
			}
			return &Keymap{
				Module:   moduleID,
				Name:     name,
				Space:    capability.StringAttr(attrs, "space"),
				Key:      key,
				Operator: capability.StringAttr(attrs, "operator"),
				Options:  attrs,
			}, nil
		},
	})
}
