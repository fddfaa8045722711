package app

import (
	"github.com/vk/addonloadgo/capabilities/keymap"
	"github.com/vk/addonloadgo/capabilities/menu"
	"github.com/vk/addonloadgo/capabilities/operator"
	"github.com/vk/addonloadgo/capabilities/panel"
	"github.com/vk/addonloadgo/capabilities/preferences"
	"github.com/vk/addonloadgo/internal/capability"
)

// coreCapabilities is the definitive list of capability kinds compiled into
// the addonloadgo binary.
var coreCapabilities = []capability.Module{
	&operator.Module{},
	&panel.Module{},
	&menu.Module{},
	&keymap.Module{},
	&preferences.Module{},
}
