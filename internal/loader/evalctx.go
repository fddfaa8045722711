package loader

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// moduleTree arranges loaded modules' exports into the nested object exposed
// as the "module" variable. Dotted ids become nested attributes, so module
// "ui.pies" is reachable as module.ui.pies.
type moduleTree struct {
	exports  map[string]cty.Value
	children map[string]*moduleTree
}

func newModuleTree() *moduleTree {
	return &moduleTree{children: make(map[string]*moduleTree)}
}

func (t *moduleTree) insert(id string, exports map[string]cty.Value) {
	node := t
	for _, part := range strings.Split(id, ".") {
		child, ok := node.children[part]
		if !ok {
			child = newModuleTree()
			node.children[part] = child
		}
		node = child
	}
	node.exports = exports
}

// value flattens a tree node into a cty object. A child module shadows an
// export of the same name on its parent.
func (t *moduleTree) value() cty.Value {
	attrs := make(map[string]cty.Value)
	for name, val := range t.exports {
		attrs[name] = val
	}
	for name, child := range t.children {
		attrs[name] = child.value()
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}

// evalContext builds the hcl.EvalContext for evaluating one module, exposing
// every already-loaded module's exports (including the evaluating module's
// own exports so far, enabling sequential self-reference).
func evalContext(loaded map[string]map[string]cty.Value) *hcl.EvalContext {
	tree := newModuleTree()
	for id, exports := range loaded {
		tree.insert(id, exports)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"module": tree.value(),
		},
	}
}
