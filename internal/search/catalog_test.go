package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

type stubProvider struct{ opts ProviderOptions }

func (s *stubProvider) Initialize(context.Context) error { return nil }
func (s *stubProvider) Search(context.Context, string) ([]types.ItemSearchResult, error) {
	return []types.ItemSearchResult{{ID: s.opts.ResourceURL}}, nil
}

func newStub(opts ProviderOptions) (types.ItemSearchProvider, error) {
	return &stubProvider{opts: opts}, nil
}

func TestNewCatalogSeedsIndexed(t *testing.T) {
	c := NewCatalog()
	assert.True(t, c.Has(IndexedProviderType))
	assert.Equal(t, []string{"indexed"}, c.Keys())

	f, err := c.Lookup("indexed")
	require.NoError(t, err)
	require.NotNil(t, f)
}

func TestLookupUnknownProvider(t *testing.T) {
	c := NewCatalog()
	f, err := c.Lookup("elastic")
	assert.Nil(t, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)

	var pnf *ProviderNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, "elastic", pnf.Type)
	assert.Equal(t, []string{"indexed"}, pnf.Known)
	assert.Contains(t, err.Error(), `"elastic"`)
	assert.Contains(t, err.Error(), "indexed")
}

func TestRegisterAndCreate(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register("stub", newStub))
	assert.Equal(t, []string{"indexed", "stub"}, c.Keys())

	p, err := c.Create("stub", ProviderOptions{ResourceURL: "r"})
	require.NoError(t, err)
	res, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "r", res[0].ID)
}

func TestRegisterDuplicateIndexedRejected(t *testing.T) {
	c := NewCatalog()
	err := c.Register(IndexedProviderType, newStub)
	assert.ErrorIs(t, err, types.ErrKeyConflict)
}

func TestCreateWrapsFactoryError(t *testing.T) {
	c := NewCatalog()
	_, err := c.Create(IndexedProviderType, ProviderOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidKey)
	assert.Contains(t, err.Error(), "indexed")
}
