package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

type fakeItem struct {
	id       string
	provider types.ItemSearchProvider
	err      error
}

func (f *fakeItem) ID() string   { return f.id }
func (f *fakeItem) Type() string { return "fake" }
func (f *fakeItem) Name() string { return f.id }
func (f *fakeItem) ItemSearchProvider() (types.ItemSearchProvider, error) {
	return f.provider, f.err
}

type fixedProvider struct {
	results []types.ItemSearchResult
}

func (p *fixedProvider) Initialize(context.Context) error { return nil }
func (p *fixedProvider) Search(context.Context, string) ([]types.ItemSearchResult, error) {
	out := make([]types.ItemSearchResult, len(p.results))
	copy(out, p.results)
	return out, nil
}

func TestSearchAllMergesAndSorts(t *testing.T) {
	items := []types.SearchableItem{
		&fakeItem{id: "b", provider: &fixedProvider{results: []types.ItemSearchResult{{ID: "2"}, {ID: "1"}}}},
		&fakeItem{id: "a", provider: &fixedProvider{results: []types.ItemSearchResult{{ID: "9"}}}},
		&fakeItem{id: "c", provider: &fixedProvider{}},
	}

	res, err := SearchAll(context.Background(), items, "q", FanOutOptions{MaxConcurrency: 2})
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, types.ItemSearchResult{MemberID: "a", ID: "9"}, res[0])
	assert.Equal(t, types.ItemSearchResult{MemberID: "b", ID: "1"}, res[1])
	assert.Equal(t, types.ItemSearchResult{MemberID: "b", ID: "2"}, res[2])
}

func TestSearchAllNoItems(t *testing.T) {
	res, err := SearchAll(context.Background(), nil, "q", FanOutOptions{})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearchAllPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	items := []types.SearchableItem{
		&fakeItem{id: "ok", provider: &fixedProvider{}},
		&fakeItem{id: "bad", err: boom},
	}

	_, err := SearchAll(context.Background(), items, "q", FanOutOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "member bad")
}
