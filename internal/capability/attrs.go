package capability

import "github.com/zclconf/go-cty/cty"

// StringAttr extracts a string attribute from an evaluated declaration,
// returning "" when absent, null, or not a string.
func StringAttr(attrs map[string]cty.Value, key string) string {
	val, ok := attrs[key]
	if !ok || val.IsNull() || val.Type() != cty.String {
		return ""
	}
	return val.AsString()
}
