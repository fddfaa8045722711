package host

import (
	"context"
	"fmt"
)

// ClassID identifies one extension class: its capability kind plus the name
// declared in the module source.
type ClassID struct {
	Kind string
	Name string
}

func (id ClassID) String() string {
	return id.Kind + "." + id.Name
}

// Extension is the capability contract. The registrar accepts a class if and
// only if it satisfies this interface; name patterns play no part in the
// decision.
type Extension interface {
	ClassID() ClassID
	// RegisterWithHost makes the class live in the host. Called exactly once
	// per load cycle, in topological module order.
	RegisterWithHost(ctx context.Context, h Host) error
	// UnregisterFromHost reverses RegisterWithHost. Called in exact reverse
	// registration order during teardown.
	UnregisterFromHost(ctx context.Context, h Host) error
}

// Host is the framework surface classes register against.
type Host interface {
	AddClass(ctx context.Context, id ClassID, class any) error
	RemoveClass(ctx context.Context, id ClassID) error
}

// DuplicateClassError is returned by a host that rejects a class because the
// identifier is already registered.
type DuplicateClassError struct {
	ID ClassID
}

func (e *DuplicateClassError) Error() string {
	return fmt.Sprintf("class %q is already registered with the host", e.ID.String())
}

// UnknownClassError is returned when unregistering a class the host does not
// hold.
type UnknownClassError struct {
	ID ClassID
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("class %q is not registered with the host", e.ID.String())
}
