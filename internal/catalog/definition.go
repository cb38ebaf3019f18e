package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// SupportedVersions is the constraint a definition's version must satisfy.
const SupportedVersions = "^1.0.0"

// Definition is the content of a catalog definition file.
type Definition struct {
	Version    string             `json:"version" jsonschema:"minLength=1"`
	LoadStrata []string           `json:"loadStrata,omitempty"`
	Catalog    []MemberDefinition `json:"catalog"`
}

// MemberDefinition describes one catalog member. ActiveStyle is written to
// the definition stratum and DefaultStyle to the defaults stratum.
type MemberDefinition struct {
	ID           string                 `json:"id,omitempty"`
	Type         string                 `json:"type" jsonschema:"minLength=1"`
	Name         string                 `json:"name,omitempty"`
	Description  string                 `json:"description,omitempty"`
	URL          string                 `json:"url,omitempty"`
	File         string                 `json:"file,omitempty"`
	Layers       string                 `json:"layers,omitempty"`
	Styles       []types.AvailableStyle `json:"styles,omitempty"`
	DefaultStyle string                 `json:"defaultStyle,omitempty"`
	ActiveStyle  string                 `json:"activeStyle,omitempty"`
	Search       *SearchDefinition      `json:"search,omitempty"`
}

// SearchDefinition selects and configures the member's item search provider.
type SearchDefinition struct {
	ProviderType string         `json:"providerType" jsonschema:"minLength=1"`
	ResourceURL  string         `json:"resourceUrl,omitempty"`
	Options      map[string]any `json:"options,omitempty"`
}

const schemaURL = "catalog-definition.schema.json"

var (
	schemaOnce     sync.Once
	schemaJSON     []byte
	schemaCompiled *schemavalidator.Schema
	schemaErr      error
)

func loadSchema() {
	r := &jsonschema.Reflector{Anonymous: true}
	s := r.Reflect(&Definition{})
	schemaJSON, schemaErr = json.MarshalIndent(s, "", "  ")
	if schemaErr != nil {
		return
	}
	c := schemavalidator.NewCompiler()
	if schemaErr = c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); schemaErr != nil {
		return
	}
	schemaCompiled, schemaErr = c.Compile(schemaURL)
}

// Schema returns the JSON Schema of a catalog definition file.
func Schema() ([]byte, error) {
	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		return nil, schemaErr
	}
	return schemaJSON, nil
}

// LoadDefinition reads a definition from path. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog definition: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseYAML parses a YAML definition by converting it to JSON first, so both
// formats pass through the same schema.
func ParseYAML(data []byte) (*Definition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidDefinition, err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidDefinition, err)
	}
	return ParseJSON(js)
}

// ParseJSON validates data against Schema, decodes it and checks the version.
func ParseJSON(data []byte) (*Definition, error) {
	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		return nil, fmt.Errorf("compile definition schema: %w", schemaErr)
	}

	// The validator expects json.Number for numeric values.
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidDefinition, err)
	}
	if err := schemaCompiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidDefinition, err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidDefinition, err)
	}
	if err := checkVersion(def.Version); err != nil {
		return nil, err
	}
	return &def, nil
}

func checkVersion(v string) error {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: version %q: %v", types.ErrInvalidDefinition, v, err)
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", types.ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}
