package discover

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/ctxlog"
	"github.com/vk/addonloadgo/internal/fsutil"
)

// moduleExtension is the source file suffix for addon modules.
const moduleExtension = ".hcl"

// Modules resolves patterns against the addon tree under root. Pattern group
// order is preserved; a package wildcard ("pkg.*") expands to the direct
// submodules of pkg in lexical order. A module matched by more than one
// pattern keeps its first discovery index. A pattern that resolves to
// nothing is a configuration error and aborts the whole run.
func Modules(ctx context.Context, root string, patterns []string) ([]*addon.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving module patterns.", "root", root, "patterns", patterns)

	var descriptors []*addon.Descriptor
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(root, pattern)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, &addon.ConfigError{Pattern: pattern}
		}

		for _, path := range paths {
			id := addon.DottedID(path)
			if seen[id] {
				logger.Debug("Module already discovered by earlier pattern, keeping first index.", "module", id, "pattern", pattern)
				continue
			}
			seen[id] = true
			descriptors = append(descriptors, &addon.Descriptor{
				ID:      id,
				Path:    path,
				Pattern: pattern,
				Index:   len(descriptors),
				State:   addon.StateDiscovered,
			})
		}
	}

	logger.Debug("Module discovery complete.", "count", len(descriptors))
	return descriptors, nil
}

// resolvePattern maps one pattern to addon-relative source paths. Exact
// patterns name a single module; "pkg.*" lists pkg's direct submodules.
func resolvePattern(root, pattern string) ([]string, error) {
	if name, ok := strings.CutSuffix(pattern, ".*"); ok {
		dir := strings.ReplaceAll(name, ".", "/")
		return fsutil.ListDirectSubmodules(root, dir, moduleExtension)
	}

	path := addon.IDToPath(pattern)
	if !fsutil.FileExists(filepath.Join(root, path)) {
		return nil, nil
	}
	return []string{path}, nil
}
