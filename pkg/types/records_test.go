package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStratumKey(t *testing.T) {
	r := StratumRecord{ItemID: "roads", StratumID: StratumUser, Trait: "activeStyle:default"}
	key := r.Key()
	assert.Equal(t, StratumKey("roads", StratumUser, "activeStyle:default"), key)

	item, stratum, trait, ok := SplitStratumKey(key)
	require.True(t, ok)
	assert.Equal(t, "roads", item)
	assert.Equal(t, StratumUser, stratum)
	assert.Equal(t, "activeStyle:default", trait)
}

func TestSplitStratumKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{"", "roads", "roads\x1fuser", "a\x1fb\x1fc\x1fd"} {
		_, _, _, ok := SplitStratumKey(key)
		assert.False(t, ok, "key %q", key)
	}
}

func TestStructuredErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains []string
	}{
		{
			name:     "key not found",
			err:      &KeyNotFoundError{Kind: "item search provider", Key: "solr", Known: []string{"indexed"}},
			sentinel: ErrKeyNotFound,
			contains: []string{"solr", "indexed"},
		},
		{
			name:     "key conflict",
			err:      &KeyConflictError{Kind: "catalog member", Key: "csv"},
			sentinel: ErrKeyConflict,
			contains: []string{"csv"},
		},
		{
			name:     "invalid style",
			err:      &InvalidStyleError{Group: "columns", StyleID: "pop", Available: []string{"age", "income"}},
			sentinel: ErrInvalidStyle,
			contains: []string{"pop", "columns", "age, income"},
		},
		{
			name:     "unknown stratum",
			err:      &UnknownStratumError{StratumID: "draft"},
			sentinel: ErrUnknownStratum,
			contains: []string{"draft"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			for _, s := range tt.contains {
				assert.Contains(t, tt.err.Error(), s)
			}
		})
	}
}
