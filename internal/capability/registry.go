package capability

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Kind describes one capability: the block type that declares it in module
// source, the Go interface contract the built class must satisfy, and the
// builder producing the class from an evaluated declaration.
type Kind struct {
	// Name is the block type, e.g. "operator".
	Name string
	// Contract is the interface type the built class is checked against
	// before registration.
	Contract reflect.Type
	// Build turns one evaluated declaration into a class instance. moduleID
	// is the declaring module, name the block label, attrs the evaluated
	// block attributes.
	Build func(moduleID, name string, attrs map[string]cty.Value) (any, error)
}

// Module is the interface capability packages implement to be wired into a
// registry at startup.
type Module interface {
	Register(r *Registry)
}

// Registry holds all capability kinds for a single application instance.
type Registry struct {
	kinds map[string]*Kind
}

// New creates an empty capability registry.
func New() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// RegisterKind adds a kind. Registering the same block type twice is a
// programmer error and panics.
func (r *Registry) RegisterKind(k *Kind) {
	if _, exists := r.kinds[k.Name]; exists {
		panic(fmt.Sprintf("capability kind %q already registered", k.Name))
	}
	if k.Build == nil {
		panic(fmt.Sprintf("capability kind %q has no builder", k.Name))
	}
	slog.Debug("Registering capability kind.", "kind", k.Name)
	r.kinds[k.Name] = k
}

// Kind looks up a capability by block type.
func (r *Registry) Kind(name string) (*Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// BlockTypes returns the registered block types, sorted for stable logging.
func (r *Registry) BlockTypes() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Satisfies reports whether the built class implements the kind's contract.
// The check is a type test, never a name heuristic.
func (k *Kind) Satisfies(class any) bool {
	if k.Contract == nil || class == nil {
		return false
	}
	return reflect.TypeOf(class).Implements(k.Contract)
}
