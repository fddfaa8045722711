package loader

import (
	"context"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/capability"
	"github.com/vk/addonloadgo/internal/ctxlog"
	"github.com/vk/addonloadgo/internal/dag"
	"github.com/vk/addonloadgo/internal/registrar"
)

// exportBlockType declares module-level state computed at load time.
const exportBlockType = "export"

// Loader evaluates modules and hands their extension declarations to the
// registrar.
type Loader struct {
	caps *capability.Registry
	reg  *registrar.Registrar
}

// New creates a loader using the given capability kinds and registrar.
func New(caps *capability.Registry, reg *registrar.Registrar) *Loader {
	return &Loader{caps: caps, reg: reg}
}

// LoadAll walks the topological order once. Descriptors already marked
// failed (static analysis) are not executed; their transitive dependents are
// skipped. In reload mode a module that still holds registrations from the
// previous cycle is unregistered when the walk reaches it, whether it then
// re-executes, fails, or is skipped.
func (l *Loader) LoadAll(ctx context.Context, order []string, descs map[string]*addon.Descriptor, g *dag.Graph, reload bool) *addon.LoadReport {
	logger := ctxlog.FromContext(ctx)
	report := &addon.LoadReport{Order: order}

	// Exports of every module loaded so far, keyed by module id.
	loaded := make(map[string]map[string]cty.Value, len(order))

	// Live registrations surviving from the previous cycle; consulted so
	// reload unregisters a module exactly once before re-executing it.
	previouslyRegistered := make(map[string]bool)
	if reload {
		for _, id := range l.reg.ModulesWithClasses() {
			previouslyRegistered[id] = true
		}
	}

	for _, id := range order {
		d := descs[id]

		// A module that held classes in the previous cycle gives them up
		// before this cycle decides its fate. Modules that fail or get
		// skipped must not keep stale registrations alive.
		if reload && previouslyRegistered[id] {
			logger.Debug("Reload: unregistering module's previous classes.", "module", id)
			report.ClassFailures = append(report.ClassFailures, l.reg.UnregisterModule(ctx, id)...)
		}

		switch d.State {
		case addon.StateFailed:
			logger.Warn("Module failed static analysis, not executing.", "module", id, "error", d.Err)
			report.Failed = append(report.Failed, addon.ModuleFailure{ID: id, Err: d.Err})
			l.skipDependents(ctx, id, descs, g)
			continue
		case addon.StateSkipped:
			report.Skipped = append(report.Skipped, skippedEntry(d))
			continue
		}

		exports, candidates, err := l.evaluate(ctx, d, loaded)
		if err != nil {
			logger.Warn("Module failed during execution.", "module", id, "error", err)
			d.State = addon.StateFailed
			d.Err = err
			report.Failed = append(report.Failed, addon.ModuleFailure{ID: id, Err: err})
			l.skipDependents(ctx, id, descs, g)
			continue
		}

		d.Exports = exports
		d.State = addon.StateImported
		loaded[id] = exports

		registered, classFailures := l.reg.Register(ctx, id, candidates)
		report.RegisteredClasses += registered
		report.ClassFailures = append(report.ClassFailures, classFailures...)

		d.State = addon.StateRegistered
		report.Loaded = append(report.Loaded, id)
		logger.Debug("Module loaded.", "module", id, "exports", len(exports), "classes", registered)
	}

	return report
}

// evaluate runs one module's top-level code: export blocks and extension
// declarations, in source-declaration order. Evaluation diagnostics become a
// contained ExecError.
func (l *Loader) evaluate(ctx context.Context, d *addon.Descriptor, loaded map[string]map[string]cty.Value) (map[string]cty.Value, []registrar.Candidate, error) {
	logger := ctxlog.FromContext(ctx)

	body, ok := d.File.Body.(*hclsyntax.Body)
	if !ok {
		return nil, nil, &addon.ExecError{ModuleID: d.ID, Diags: hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported source form",
			Detail:   "module source is not native HCL syntax",
		}}}
	}

	exports := make(map[string]cty.Value)
	var candidates []registrar.Candidate

	for _, block := range body.Blocks {
		switch {
		case block.Type == exportBlockType:
			if len(block.Labels) != 1 {
				return nil, nil, execDiag(d.ID, block, "export blocks take exactly one label, the export name")
			}
			attr, ok := block.Body.Attributes["value"]
			if !ok {
				return nil, nil, execDiag(d.ID, block, "export blocks must set value")
			}

			// Own exports so far are visible, so later exports can build on
			// earlier ones the way sequential top-level code does.
			loaded[d.ID] = exports
			val, diags := attr.Expr.Value(evalContext(loaded))
			delete(loaded, d.ID)
			if diags.HasErrors() {
				return nil, nil, &addon.ExecError{ModuleID: d.ID, Diags: diags}
			}
			exports[block.Labels[0]] = val

		default:
			kind, known := l.caps.Kind(block.Type)
			if !known {
				logger.Debug("Unrecognized block type, skipping.", "module", d.ID, "block", block.Type)
				continue
			}
			if len(block.Labels) != 1 {
				return nil, nil, execDiag(d.ID, block, "extension declarations take exactly one label, the class name")
			}

			loaded[d.ID] = exports
			attrs, err := evaluateAttributes(block.Body, loaded)
			delete(loaded, d.ID)
			if err != nil {
				return nil, nil, &addon.ExecError{ModuleID: d.ID, Diags: err}
			}

			class, buildErr := kind.Build(d.ID, block.Labels[0], attrs)
			if buildErr != nil {
				// A malformed declaration fails the whole module: it is part
				// of the module's top-level code.
				return nil, nil, execDiag(d.ID, block, buildErr.Error())
			}
			candidates = append(candidates, registrar.Candidate{Kind: kind, Name: block.Labels[0], Class: class})
		}
	}

	return exports, candidates, nil
}

// evaluateAttributes evaluates every attribute of an extension declaration.
func evaluateAttributes(body *hclsyntax.Body, loaded map[string]map[string]cty.Value) (map[string]cty.Value, hcl.Diagnostics) {
	evalCtx := evalContext(loaded)
	attrs := make(map[string]cty.Value, len(body.Attributes))

	// Evaluate in source order for deterministic first-error reporting.
	ordered := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SrcRange.Start.Byte < ordered[j].SrcRange.Start.Byte
	})

	for _, attr := range ordered {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		attrs[attr.Name] = val
	}
	return attrs, nil
}

// skipDependents marks every module transitively depending on failedID as
// skipped. Entries land in the report when the order walk reaches them.
func (l *Loader) skipDependents(ctx context.Context, failedID string, descs map[string]*addon.Descriptor, g *dag.Graph) {
	logger := ctxlog.FromContext(ctx)

	doomed, err := g.TransitiveDependents(failedID)
	if err != nil {
		logger.Error("Failed to compute dependents for containment.", "module", failedID, "error", err)
		return
	}

	for _, id := range doomed {
		d := descs[id]
		if d.State.Terminal() {
			continue
		}
		logger.Warn("Skipping module due to upstream failure.", "module", id, "failed_dependency", failedID)
		d.State = addon.StateSkipped
		d.Err = &addon.SkipError{ModuleID: id, Cause: failedID}
	}
}

func skippedEntry(d *addon.Descriptor) addon.SkippedModule {
	entry := addon.SkippedModule{ID: d.ID}
	if skip, ok := d.Err.(*addon.SkipError); ok {
		entry.Cause = skip.Cause
	}
	return entry
}

func execDiag(moduleID string, block *hclsyntax.Block, detail string) *addon.ExecError {
	return &addon.ExecError{ModuleID: moduleID, Diags: hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid module declaration",
		Detail:   detail,
		Subject:  block.DefRange().Ptr(),
	}}}
}
