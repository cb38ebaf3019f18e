package strata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func TestDefaultOrder(t *testing.T) {
	o := DefaultOrder()
	assert.Equal(t, []string{
		types.StratumUser,
		types.StratumOverride,
		types.StratumDefinition,
		types.StratumUnderride,
		types.StratumDefaults,
	}, o.TopToBottom())
	assert.True(t, o.IsUserStratum(types.StratumUser))
	assert.True(t, o.IsUserStratum(types.StratumOverride))
	assert.False(t, o.IsUserStratum(types.StratumDefinition))
	assert.True(t, o.IsDefinitionStratum(types.StratumUnderride))
	assert.False(t, o.Has("nope"))
}

func TestAddLoadStratumSitsBetweenDefaultsAndDefinition(t *testing.T) {
	o := DefaultOrder()
	require.NoError(t, o.AddLoadStratum("wmsServer"))
	require.NoError(t, o.AddLoadStratum("wmsDiff"))

	assert.Equal(t, []string{
		types.StratumDefaults,
		"wmsServer",
		"wmsDiff",
		types.StratumUnderride,
		types.StratumDefinition,
		types.StratumOverride,
		types.StratumUser,
	}, o.BottomToTop())
	assert.True(t, o.IsLoadStratum("wmsDiff"))
}

func TestAddStratumIdempotentAndConflict(t *testing.T) {
	o := DefaultOrder()
	before, _ := o.Priority(types.StratumUser)

	require.NoError(t, o.AddUserStratum(types.StratumUser))
	after, _ := o.Priority(types.StratumUser)
	assert.Equal(t, before, after)

	err := o.AddLoadStratum(types.StratumUser)
	assert.ErrorIs(t, err, types.ErrStratumConflict)
	assert.ErrorIs(t, o.AddLoadStratum(""), types.ErrInvalidKey)
}

func TestCloneIsIndependent(t *testing.T) {
	o := DefaultOrder()
	c := o.Clone()
	require.NoError(t, c.AddLoadStratum("extra"))
	assert.True(t, c.Has("extra"))
	assert.False(t, o.Has("extra"))
}
