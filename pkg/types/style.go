package types

// AvailableStyle is one selectable style option. Values are supplied by the
// member's definition and are read-only to the style resolver.
type AvailableStyle struct {
	ID   string `json:"id" yaml:"id" jsonschema:"minLength=1"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}
