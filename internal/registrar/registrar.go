package registrar

import (
	"context"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/ctxlog"
	"github.com/vk/addonloadgo/internal/host"
)

// RegisteredClass records one successful registration. The extension value
// doubles as the unregister handle.
type RegisteredClass struct {
	ID     host.ClassID
	Module string
	ext    host.Extension
}

// Candidate is one built class awaiting the capability check, in the order
// it was declared in module source.
type Candidate struct {
	Kind  *capability.Kind
	Name  string
	Class any
}

// Registrar tracks registrations against a single host.
type Registrar struct {
	host       host.Host
	registered []*RegisteredClass
}

// New creates a registrar bound to h.
func New(h host.Host) *Registrar {
	return &Registrar{host: h}
}

// Register walks a loaded module's candidates in declaration order,
// registering every class that satisfies the capability contract. Host
// rejections are recorded per class and never abort sibling registrations.
func (r *Registrar) Register(ctx context.Context, moduleID string, candidates []Candidate) (int, []addon.ClassFailure) {
	logger := ctxlog.FromContext(ctx)

	var failures []addon.ClassFailure
	registered := 0
	for _, c := range candidates {
		ext, ok := c.Class.(host.Extension)
		if !ok || !c.Kind.Satisfies(c.Class) {
			// Not an extension class; the contract check is a type test,
			// never a name heuristic.
			logger.Debug("Declaration does not satisfy the capability contract, ignoring.",
				"module", moduleID, "kind", c.Kind.Name, "name", c.Name)
			continue
		}

		if err := ext.RegisterWithHost(ctx, r.host); err != nil {
			logger.Warn("Host rejected class.", "module", moduleID, "class", ext.ClassID().String(), "error", err)
			failures = append(failures, addon.ClassFailure{
				Class:  ext.ClassID().String(),
				Module: moduleID,
				Err:    err,
			})
			continue
		}

		logger.Debug("Class registered.", "module", moduleID, "class", ext.ClassID().String())
		r.registered = append(r.registered, &RegisteredClass{
			ID:     ext.ClassID(),
			Module: moduleID,
			ext:    ext,
		})
		registered++
	}

	return registered, failures
}

// UnregisterModule removes every class the given module registered, newest
// first, keeping the relative order of all other registrations intact. Used
// by reload before a module's source is re-executed.
func (r *Registrar) UnregisterModule(ctx context.Context, moduleID string) []addon.ClassFailure {
	var failures []addon.ClassFailure
	remaining := r.registered[:0]

	// Walk backwards to unregister newest-first, then rebuild the record.
	var keep []*RegisteredClass
	for i := len(r.registered) - 1; i >= 0; i-- {
		rc := r.registered[i]
		if rc.Module != moduleID {
			keep = append(keep, rc)
			continue
		}
		if err := rc.ext.UnregisterFromHost(ctx, r.host); err != nil {
			failures = append(failures, addon.ClassFailure{Class: rc.ID.String(), Module: rc.Module, Err: err})
		}
	}

	// keep is reversed; restore registration order.
	for i := len(keep) - 1; i >= 0; i-- {
		remaining = append(remaining, keep[i])
	}
	r.registered = remaining

	return failures
}

// TeardownAll unregisters every recorded class in exact reverse registration
// order. A failure on one entry does not stop attempts on the rest; all
// failures are collected into the report.
func (r *Registrar) TeardownAll(ctx context.Context) *addon.UnregisterReport {
	logger := ctxlog.FromContext(ctx)
	report := &addon.UnregisterReport{}

	for i := len(r.registered) - 1; i >= 0; i-- {
		rc := r.registered[i]
		if err := rc.ext.UnregisterFromHost(ctx, r.host); err != nil {
			logger.Warn("Failed to unregister class.", "class", rc.ID.String(), "error", err)
			report.Failed = append(report.Failed, addon.ClassFailure{Class: rc.ID.String(), Module: rc.Module, Err: err})
			continue
		}
		report.Unregistered = append(report.Unregistered, rc.ID.String())
	}

	r.registered = nil
	return report
}

// Reset drops all registration records without calling the host. Intended
// for test isolation only.
func (r *Registrar) Reset() {
	r.registered = nil
}

// Count returns the number of live registrations.
func (r *Registrar) Count() int { return len(r.registered) }

// ClassIDs returns the live registrations in registration order.
func (r *Registrar) ClassIDs() []host.ClassID {
	ids := make([]host.ClassID, len(r.registered))
	for i, rc := range r.registered {
		ids[i] = rc.ID
	}
	return ids
}

// ModulesWithClasses returns the ids of modules that currently hold at least
// one registration, in first-registration order.
func (r *Registrar) ModulesWithClasses() []string {
	seen := make(map[string]bool)
	var modules []string
	for _, rc := range r.registered {
		if !seen[rc.Module] {
			seen[rc.Module] = true
			modules = append(modules, rc.Module)
		}
	}
	return modules
}
