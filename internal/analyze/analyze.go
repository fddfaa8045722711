package analyze

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/ctxlog"
)

// requiresAttr is the optional module-level attribute declaring explicit
// dependencies. It exists because static extraction cannot infer dynamic or
// aggregate references.
const requiresAttr = "requires"

// moduleRoot is the traversal root that addresses other addon modules.
const moduleRoot = "module"

// Module statically analyzes the descriptor's source. On success it fills
// d.File, d.Requires and d.Deps and advances the state to analyzed. The
// returned error is always a *addon.ParseError; the caller decides
// containment.
func Module(ctx context.Context, parser *hclparse.Parser, root string, d *addon.Descriptor, discovered map[string]*addon.Descriptor) error {
	logger := ctxlog.FromContext(ctx)

	file, diags := parser.ParseHCLFile(filepath.Join(root, filepath.FromSlash(d.Path)))
	if diags.HasErrors() {
		return &addon.ParseError{ModuleID: d.ID, Diags: diags}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return &addon.ParseError{ModuleID: d.ID, Diags: hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported source form",
			Detail:   "module source is not native HCL syntax",
		}}}
	}

	explicit, err := explicitDeps(d, body, discovered)
	if err != nil {
		return err
	}

	deps := make([]string, 0, len(explicit))
	seen := make(map[string]bool)
	for _, dep := range explicit {
		if !seen[dep] {
			seen[dep] = true
			deps = append(deps, dep)
		}
	}

	for _, traversal := range collectTraversals(body) {
		target, ok := resolveReference(traversal, discovered)
		if !ok || target == d.ID || seen[target] {
			continue
		}
		logger.Debug("Inferred module reference.", "module", d.ID, "references", target)
		seen[target] = true
		deps = append(deps, target)
	}

	d.File = file
	d.Requires = explicit
	d.Deps = deps
	d.State = addon.StateAnalyzed
	return nil
}

// explicitDeps reads the requires attribute without evaluating module code:
// entries must be literal strings naming discovered modules.
func explicitDeps(d *addon.Descriptor, body *hclsyntax.Body, discovered map[string]*addon.Descriptor) ([]string, error) {
	attr, ok := body.Attributes[requiresAttr]
	if !ok {
		return nil, nil
	}

	exprs, diags := hcl.ExprList(attr.Expr)
	if diags.HasErrors() {
		return nil, &addon.ParseError{ModuleID: d.ID, Diags: diags}
	}

	var deps []string
	for _, expr := range exprs {
		val, valDiags := expr.Value(nil)
		if valDiags.HasErrors() || !val.Type().Equals(cty.String) || val.IsNull() {
			return nil, &addon.ParseError{ModuleID: d.ID, Diags: hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid requires entry",
				Detail:   "requires entries must be literal module name strings",
				Subject:  expr.Range().Ptr(),
			}}}
		}

		name := val.AsString()
		if name == d.ID {
			continue
		}
		if _, known := discovered[name]; !known {
			return nil, &addon.ParseError{ModuleID: d.ID, Diags: hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown module in requires",
				Detail:   "module " + name + " is not part of the discovered set",
				Subject:  expr.Range().Ptr(),
			}}}
		}
		deps = append(deps, name)
	}
	return deps, nil
}

// collectTraversals gathers the variable traversals of every expression in
// the body, recursing into nested blocks. The requires attribute is excluded:
// it is handled as an explicit declaration, not a reference.
func collectTraversals(body *hclsyntax.Body) []hcl.Traversal {
	var traversals []hcl.Traversal

	var walk func(b *hclsyntax.Body, topLevel bool)
	walk = func(b *hclsyntax.Body, topLevel bool) {
		// Source order, so first-occurrence dependency order is stable.
		attrs := make([]*hclsyntax.Attribute, 0, len(b.Attributes))
		for name, attr := range b.Attributes {
			if topLevel && name == requiresAttr {
				continue
			}
			attrs = append(attrs, attr)
		}
		sort.Slice(attrs, func(i, j int) bool {
			return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
		})
		for _, attr := range attrs {
			traversals = append(traversals, attr.Expr.Variables()...)
		}
		for _, block := range b.Blocks {
			walk(block.Body, false)
		}
	}
	walk(body, true)

	return traversals
}

// resolveReference maps a traversal onto a discovered module id. Only
// traversals rooted at "module" are candidates; the attribute chain after
// the root is matched against the discovered set longest-prefix-first, so
// "module.b.x.step" resolves to module "b.x" when both "b" and "b.x" exist.
// Anything unresolvable is skipped, never fatal.
func resolveReference(traversal hcl.Traversal, discovered map[string]*addon.Descriptor) (string, bool) {
	if len(traversal) < 2 || traversal.RootName() != moduleRoot {
		return "", false
	}

	var parts []string
	for _, step := range traversal[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			break
		}
		parts = append(parts, attr.Name)
	}

	for i := len(parts); i > 0; i-- {
		candidate := strings.Join(parts[:i], ".")
		if _, ok := discovered[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}
