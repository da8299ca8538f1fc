package loam

// OverrideDocument is the frontmatter of one override file.
// It uses "mapstructure" tags to match the keys Loam decodes metadata with.
type OverrideDocument struct {
	System   string         `json:"system" mapstructure:"system"`
	Node     string         `json:"node" mapstructure:"node"`
	Settings map[string]any `json:"settings,omitempty" mapstructure:"settings"`
}
