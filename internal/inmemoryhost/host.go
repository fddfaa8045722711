package inmemoryhost

import (
	"context"
	"sync"

	"github.com/vk/addonloadgo/internal/ctxlog"
	"github.com/vk/addonloadgo/internal/host"
)

// Host stores registered classes in memory. Safe for concurrent reads; the
// load pipeline is the only writer.
type Host struct {
	mu      sync.RWMutex
	classes map[host.ClassID]any
	order   []host.ClassID
}

// New creates an empty in-memory host.
func New() *Host {
	return &Host{classes: make(map[host.ClassID]any)}
}

// AddClass registers a class. Duplicate identifiers are rejected with a
// DuplicateClassError, mirroring hosts that key classes by unique id.
func (h *Host) AddClass(ctx context.Context, id host.ClassID, class any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.classes[id]; exists {
		return &host.DuplicateClassError{ID: id}
	}

	ctxlog.FromContext(ctx).Debug("Host accepted class.", "class", id.String())
	h.classes[id] = class
	h.order = append(h.order, id)
	return nil
}

// RemoveClass unregisters a class previously added.
func (h *Host) RemoveClass(ctx context.Context, id host.ClassID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.classes[id]; !exists {
		return &host.UnknownClassError{ID: id}
	}

	ctxlog.FromContext(ctx).Debug("Host released class.", "class", id.String())
	delete(h.classes, id)
	for i, other := range h.order {
		if other == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

// Classes returns the currently registered class ids in registration order.
func (h *Host) Classes() []host.ClassID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]host.ClassID, len(h.order))
	copy(out, h.order)
	return out
}

// Class returns the registered class value for id, if present.
func (h *Host) Class(id host.ClassID) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	class, ok := h.classes[id]
	return class, ok
}
