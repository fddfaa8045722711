package addon

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ManifestFileName is the well-known manifest file at the addon root.
const ManifestFileName = "addon.hcl"

// Manifest describes an addon: its identity and the ordered module patterns
// the discoverer resolves.
type Manifest struct {
	Name    string   `hcl:"name"`
	Version string   `hcl:"version,optional"`
	Modules []string `hcl:"modules"`
}

// manifestFile is the top-level schema of addon.hcl.
type manifestFile struct {
	Addon *Manifest `hcl:"addon,block"`
}

// LoadManifest parses and decodes the addon manifest under root.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFileName)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse addon manifest %s: %w", path, diags)
	}

	var mf manifestFile
	diags = gohcl.DecodeBody(file.Body, nil, &mf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode addon manifest %s: %w", path, diags)
	}
	if mf.Addon == nil {
		return nil, fmt.Errorf("addon manifest %s has no addon block", path)
	}
	if len(mf.Addon.Modules) == 0 {
		return nil, fmt.Errorf("addon manifest %s declares no module patterns", path)
	}

	return mf.Addon, nil
}
