package addon

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// LoadState tracks a module's progress through the pipeline.
type LoadState int

const (
	// StateDiscovered means the module was resolved from a pattern but its
	// source has not been analyzed yet.
	StateDiscovered LoadState = iota
	// StateAnalyzed means static reference extraction succeeded.
	StateAnalyzed
	// StateImported means the module's top-level code was evaluated.
	StateImported
	// StateRegistered means the module's extension classes are registered
	// with the host.
	StateRegistered
	// StateFailed means the module failed to parse, evaluate, or register.
	StateFailed
	// StateSkipped means a transitive dependency of the module failed, so
	// the module was never evaluated.
	StateSkipped
)

func (s LoadState) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateAnalyzed:
		return "analyzed"
	case StateImported:
		return "imported"
	case StateRegistered:
		return "registered"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Terminal reports whether a state ends the module's participation in the
// current load cycle.
func (s LoadState) Terminal() bool {
	return s == StateFailed || s == StateSkipped
}

// Descriptor is the per-module record created once at discovery. Its identity
// (ID) is stable for the whole process run; the rest mutates in place as the
// module moves through the pipeline.
type Descriptor struct {
	// ID is the dotted identifier, e.g. "operators.keyframe_jump".
	ID string
	// Path is the source file path relative to the addon root.
	Path string
	// Pattern is the manifest pattern that discovered this module.
	Pattern string
	// Index is the discovery index, used as the deterministic tie-break
	// during topological sorting.
	Index int

	State LoadState
	// Err holds the cause when State is StateFailed or StateSkipped.
	Err error

	// File is the parsed source, populated by the extractor.
	File *hcl.File
	// Requires holds the module's explicitly declared dependencies in
	// declaration order.
	Requires []string
	// Deps is the resolved outgoing dependency set: explicit declarations
	// first, then inferred references in first-occurrence order.
	Deps []string

	// Exports holds the module-level values produced when the module's
	// top-level code ran. Rebuilt on every (re)load.
	Exports map[string]cty.Value
}

// DottedID converts an addon-relative source path like "ui/pies/align.hcl"
// into its module identifier "ui.pies.align".
func DottedID(relPath string) string {
	id := strings.TrimSuffix(relPath, ".hcl")
	return strings.ReplaceAll(id, "/", ".")
}

// IDToPath is the inverse of DottedID.
func IDToPath(id string) string {
	return strings.ReplaceAll(id, ".", "/") + ".hcl"
}
