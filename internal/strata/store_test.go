package strata

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

const group = "activeStyle:default"

func TestEffectiveValueFollowsPrecedence(t *testing.T) {
	s := NewStore(DefaultOrder())
	require.NoError(t, s.SetValue(types.StratumDefaults, group, "A"))
	require.NoError(t, s.SetValue(types.StratumOverride, group, "B"))

	v, ok := s.EffectiveValue(group)
	require.True(t, ok)
	assert.Equal(t, "B", v)

	require.NoError(t, s.ClearValue(types.StratumOverride, group))
	v, ok = s.EffectiveValue(group)
	require.True(t, ok)
	assert.Equal(t, "A", v)
}

func TestPrecedenceIgnoresInsertionOrder(t *testing.T) {
	s := NewStore(DefaultOrder())
	require.NoError(t, s.SetValue(types.StratumUser, group, "U"))
	require.NoError(t, s.SetValue(types.StratumDefaults, group, "D"))

	v, stratum, ok := s.Resolve(group)
	require.True(t, ok)
	assert.Equal(t, "U", v)
	assert.Equal(t, types.StratumUser, stratum)
}

func TestEffectiveValueUndefined(t *testing.T) {
	s := NewStore(DefaultOrder())
	_, ok := s.EffectiveValue(group)
	assert.False(t, ok)

	require.NoError(t, s.SetValue(types.StratumUser, "other", "x"))
	_, ok = s.EffectiveValue(group)
	assert.False(t, ok)
}

func TestSetValueOverwrites(t *testing.T) {
	s := NewStore(DefaultOrder())
	require.NoError(t, s.SetValue(types.StratumUser, group, "one"))
	require.NoError(t, s.SetValue(types.StratumUser, group, "two"))

	v, ok := s.Value(types.StratumUser, group)
	require.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestUnknownStratumRejected(t *testing.T) {
	s := NewStore(DefaultOrder())

	err := s.SetValue("scratch", group, "x")
	assert.ErrorIs(t, err, types.ErrUnknownStratum)
	var use *types.UnknownStratumError
	assert.ErrorAs(t, err, &use)
	assert.Equal(t, "scratch", use.StratumID)

	assert.ErrorIs(t, s.ClearValue("scratch", group), types.ErrUnknownStratum)
	assert.ErrorIs(t, s.SetValue(types.StratumUser, "", "x"), types.ErrInvalidKey)
	assert.Empty(t, s.Strata())
}

func TestClearValueKeepsStratumAndOthers(t *testing.T) {
	s := NewStore(DefaultOrder())
	require.NoError(t, s.SetValue(types.StratumUser, group, "U"))
	require.NoError(t, s.SetValue(types.StratumUser, "name", "Roads"))
	require.NoError(t, s.SetValue(types.StratumDefinition, group, "D"))

	require.NoError(t, s.ClearValue(types.StratumUser, group))
	require.NoError(t, s.ClearValue(types.StratumUser, group), "clearing twice succeeds")

	assert.Equal(t, []string{types.StratumUser, types.StratumDefinition}, s.Strata())
	name, ok := s.Value(types.StratumUser, "name")
	assert.True(t, ok)
	assert.Equal(t, "Roads", name)
	v, _ := s.EffectiveValue(group)
	assert.Equal(t, "D", v)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := NewStore(DefaultOrder())
	require.NoError(t, s.SetValue(types.StratumUser, group, "U"))

	snap := s.Snapshot()
	snap[types.StratumUser][group] = "changed"

	v, _ := s.Value(types.StratumUser, group)
	assert.Equal(t, "U", v)
	assert.ElementsMatch(t, []string{group}, s.Traits())
}

// referenceResolve walks the order top to bottom and returns the first value.
func referenceResolve(order *Order, model map[string]map[string]string, trait string) (string, bool) {
	for _, id := range order.TopToBottom() {
		if v, ok := model[id][trait]; ok {
			return v, true
		}
	}
	return "", false
}

func TestRandomReplayMatchesReference(t *testing.T) {
	order := DefaultOrder()
	require.NoError(t, order.AddLoadStratum("loaded"))
	ids := order.BottomToTop()
	traits := []string{"a", "b", "c"}
	values := []string{"x", "y", "z", "w"}

	rng := rand.New(rand.NewPCG(7, 11))
	for run := 0; run < 200; run++ {
		s := NewStore(order)
		model := make(map[string]map[string]string)

		for step := 0; step < 40; step++ {
			id := ids[rng.IntN(len(ids))]
			trait := traits[rng.IntN(len(traits))]
			if rng.IntN(3) == 0 {
				require.NoError(t, s.ClearValue(id, trait))
				delete(model[id], trait)
			} else {
				v := values[rng.IntN(len(values))]
				require.NoError(t, s.SetValue(id, trait, v))
				if model[id] == nil {
					model[id] = make(map[string]string)
				}
				model[id][trait] = v
			}

			for _, tr := range traits {
				want, wantOK := referenceResolve(order, model, tr)
				got, gotOK := s.EffectiveValue(tr)
				require.Equal(t, wantOK, gotOK, "run %d step %d trait %s", run, step, tr)
				require.Equal(t, want, got, "run %d step %d trait %s", run, step, tr)
			}
		}
	}
}
