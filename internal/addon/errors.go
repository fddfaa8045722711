package addon

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// ConfigError reports a manifest pattern that resolved to no modules. It is
// fatal: init aborts before any module code runs.
type ConfigError struct {
	Pattern string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pattern %q resolved to no modules", e.Pattern)
}

// ParseError reports a module whose source could not be statically analyzed.
// It is contained: the module is marked failed, its dependents are skipped,
// and unaffected branches proceed.
type ParseError struct {
	ModuleID string
	Diags    hcl.Diagnostics
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("module %q failed static analysis: %s", e.ModuleID, e.Diags.Error())
}

func (e *ParseError) Unwrap() error { return e.Diags }

// ExecError reports a module whose top-level code raised during evaluation.
// Containment policy is the same as for ParseError.
type ExecError struct {
	ModuleID string
	Diags    hcl.Diagnostics
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("module %q failed during execution: %s", e.ModuleID, e.Diags.Error())
}

func (e *ExecError) Unwrap() error { return e.Diags }

// SkipError marks a module that was never executed because something it
// transitively depends on failed.
type SkipError struct {
	ModuleID string
	// Cause is the id of the failed module this one depends on.
	Cause string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("module %q skipped due to upstream failure of %q", e.ModuleID, e.Cause)
}
