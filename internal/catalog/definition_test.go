package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

const sampleYAML = `
version: 1.2.0
loadStrata: [wms-capabilities]
catalog:
  - id: roads
    type: geojson
    name: Roads
    file: data/roads.geojson
    styles:
      - {id: plain, name: Plain}
      - {id: dark, name: Dark}
    defaultStyle: plain
    search:
      providerType: indexed
      resourceUrl: data/roads-index.json
      options:
        searchableFields: [name]
  - type: wms
    url: https://maps.example.org/wms
    layers: coastline
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseYAML(t *testing.T) {
	def, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", def.Version)
	assert.Equal(t, []string{"wms-capabilities"}, def.LoadStrata)
	require.Len(t, def.Catalog, 2)

	roads := def.Catalog[0]
	assert.Equal(t, "roads", roads.ID)
	assert.Equal(t, "geojson", roads.Type)
	assert.Equal(t, []types.AvailableStyle{{ID: "plain", Name: "Plain"}, {ID: "dark", Name: "Dark"}}, roads.Styles)
	assert.Equal(t, "plain", roads.DefaultStyle)
	require.NotNil(t, roads.Search)
	assert.Equal(t, "indexed", roads.Search.ProviderType)
	assert.Equal(t, []any{"name"}, roads.Search.Options["searchableFields"])

	wms := def.Catalog[1]
	assert.Empty(t, wms.ID)
	assert.Equal(t, "coastline", wms.Layers)
	assert.Nil(t, wms.Search)
}

func TestParseJSONMatchesYAML(t *testing.T) {
	fromYAML, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	data, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	fromJSON, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)
}

func TestParseJSONNumbers(t *testing.T) {
	def, err := ParseJSON([]byte(`{"version": "1.0.0", "catalog": [
		{"type": "csv", "search": {"providerType": "indexed", "options": {"maxResults": 25, "ratio": 0.5}}}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, float64(25), def.Catalog[0].Search.Options["maxResults"])

	_, err = ParseJSON([]byte(`{"version": 1, "catalog": []}`))
	assert.ErrorIs(t, err, types.ErrInvalidDefinition, "a numeric version fails the string schema")
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "missing version",
			yaml:    "catalog: []",
			wantErr: types.ErrInvalidDefinition,
		},
		{
			name:    "missing catalog",
			yaml:    "version: 1.0.0",
			wantErr: types.ErrInvalidDefinition,
		},
		{
			name:    "member without type",
			yaml:    "version: 1.0.0\ncatalog:\n  - id: a",
			wantErr: types.ErrInvalidDefinition,
		},
		{
			name:    "unknown member field",
			yaml:    "version: 1.0.0\ncatalog:\n  - {type: csv, colour: red}",
			wantErr: types.ErrInvalidDefinition,
		},
		{
			name:    "style without id",
			yaml:    "version: 1.0.0\ncatalog:\n  - {type: csv, styles: [{name: x}]}",
			wantErr: types.ErrInvalidDefinition,
		},
		{
			name:    "version is not semver",
			yaml:    "version: latest\ncatalog: []",
			wantErr: types.ErrInvalidDefinition,
		},
		{
			name:    "unsupported major version",
			yaml:    "version: 2.0.0\ncatalog: []",
			wantErr: types.ErrUnsupportedVersion,
		},
		{
			name:    "malformed yaml",
			yaml:    "version: [",
			wantErr: types.ErrInvalidDefinition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDefinitionByExtension(t *testing.T) {
	yamlPath := writeFile(t, "catalog.yml", sampleYAML)
	def, err := LoadDefinition(yamlPath)
	require.NoError(t, err)
	assert.Len(t, def.Catalog, 2)

	jsonPath := writeFile(t, "catalog.json", `{"version":"1.0.0","catalog":[{"type":"csv","id":"census"}]}`)
	def, err = LoadDefinition(jsonPath)
	require.NoError(t, err)
	require.Len(t, def.Catalog, 1)
	assert.Equal(t, "census", def.Catalog[0].ID)

	_, err = LoadDefinition(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "$schema")
	assert.Contains(t, string(data), "defaultStyle")
	assert.Contains(t, string(data), "providerType")
}
