package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

const indexJSON = `[
  {"id": "r1", "name": "Main Roads", "description": "Arterial road network", "fields": {"state": "Victoria"}},
  {"id": "r2", "name": "Rail Lines", "description": "Passenger rail", "fields": {"state": "New South Wales"}},
  {"id": "r3", "name": "Straße Index", "description": "Street names", "fields": {"state": "Berlin"}}
]`

const indexYAML = `
- id: y1
  name: Rivers
  description: Major rivers
- id: y2
  name: Lakes
`

func writeIndex(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newInitialized(t *testing.T, opts ProviderOptions) types.ItemSearchProvider {
	t.Helper()
	p, err := NewIndexedProvider(opts)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(context.Background()))
	return p
}

func ids(results []types.ItemSearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestIndexedSearch(t *testing.T) {
	path := writeIndex(t, "index.json", indexJSON)
	p := newInitialized(t, ProviderOptions{ResourceURL: path})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "prefix on name", query: "road", want: []string{"r1"}},
		{name: "case insensitive", query: "RAIL", want: []string{"r2"}},
		{name: "all tokens must match", query: "rail victoria", want: []string{}},
		{name: "field values searched", query: "new south", want: []string{"r2"}},
		{name: "glob token", query: "*way*", want: []string{}},
		{name: "glob matches word", query: "arter*", want: []string{"r1"}},
		{name: "case folding beyond ascii", query: "STRAßE", want: []string{"r3"}},
		{name: "empty query", query: "   ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res))
		})
	}
}

func TestIndexedSearchableFields(t *testing.T) {
	path := writeIndex(t, "index.json", indexJSON)
	p := newInitialized(t, ProviderOptions{
		ResourceURL: "file://" + path,
		Options:     map[string]any{OptionSearchableFields: []any{"name"}},
	})

	res, err := p.Search(context.Background(), "victoria")
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = p.Search(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids(res))
	assert.Equal(t, "Victoria", res[0].Fields["state"])
}

func TestIndexedYAML(t *testing.T) {
	path := writeIndex(t, "index.yaml", indexYAML)
	p := newInitialized(t, ProviderOptions{ResourceURL: path})

	res, err := p.Search(context.Background(), "riv")
	require.NoError(t, err)
	assert.Equal(t, []string{"y1"}, ids(res))
}

func TestIndexedSearchBeforeInitialize(t *testing.T) {
	p, err := NewIndexedProvider(ProviderOptions{ResourceURL: "unused.json"})
	require.NoError(t, err)
	_, err = p.Search(context.Background(), "x")
	assert.ErrorIs(t, err, types.ErrProviderNotInitialized)
}

func TestIndexedErrors(t *testing.T) {
	_, err := NewIndexedProvider(ProviderOptions{
		ResourceURL: "x.json",
		Options:     map[string]any{OptionSearchableFields: 3},
	})
	assert.Error(t, err)

	p, err := NewIndexedProvider(ProviderOptions{ResourceURL: filepath.Join(t.TempDir(), "missing.json")})
	require.NoError(t, err)
	assert.Error(t, p.Initialize(context.Background()))

	bad := writeIndex(t, "bad.json", "{not json")
	p, err = NewIndexedProvider(ProviderOptions{ResourceURL: bad})
	require.NoError(t, err)
	assert.Error(t, p.Initialize(context.Background()))

	good := newInitialized(t, ProviderOptions{ResourceURL: writeIndex(t, "i.json", indexJSON)})
	_, err = good.Search(context.Background(), "[a")
	assert.Error(t, err)
}

func TestIndexedSearchCancelled(t *testing.T) {
	p := newInitialized(t, ProviderOptions{ResourceURL: writeIndex(t, "i.json", indexJSON)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Search(ctx, "road")
	assert.ErrorIs(t, err, context.Canceled)
}
