package strata

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Store holds the strata of a single model. Each stratum maps trait names to
// values. A Store is not safe for concurrent mutation; one writer per model
// is assumed.
type Store struct {
	order  *Order
	layers map[string]map[string]string
}

var _ types.TraitStore = (*Store)(nil)

// NewStore returns an empty Store resolving against order.
func NewStore(order *Order) *Store {
	return &Store{
		order:  order,
		layers: make(map[string]map[string]string),
	}
}

// Order returns the precedence order the store resolves against.
func (s *Store) Order() *Order {
	return s.order
}

func (s *Store) check(stratumID, trait string) error {
	if !s.order.Has(stratumID) {
		return &types.UnknownStratumError{StratumID: stratumID}
	}
	if trait == "" {
		return fmt.Errorf("trait: %w", types.ErrInvalidKey)
	}
	return nil
}

// SetValue records value for trait in stratumID, creating the stratum if it
// does not exist yet. Returns an *types.UnknownStratumError if stratumID is
// not part of the order.
func (s *Store) SetValue(stratumID, trait, value string) error {
	if err := s.check(stratumID, trait); err != nil {
		return err
	}
	layer, ok := s.layers[stratumID]
	if !ok {
		layer = make(map[string]string)
		s.layers[stratumID] = layer
	}
	layer[trait] = value
	return nil
}

// ClearValue removes trait from stratumID. Other strata are untouched and
// the stratum itself remains. Clearing an absent value succeeds.
func (s *Store) ClearValue(stratumID, trait string) error {
	if err := s.check(stratumID, trait); err != nil {
		return err
	}
	if layer, ok := s.layers[stratumID]; ok {
		delete(layer, trait)
	}
	return nil
}

// EffectiveValue returns the value of trait in the highest-precedence
// stratum that defines it.
func (s *Store) EffectiveValue(trait string) (string, bool) {
	v, _, ok := s.Resolve(trait)
	return v, ok
}

// Resolve is EffectiveValue that also names the stratum the value came from.
func (s *Store) Resolve(trait string) (value, stratumID string, ok bool) {
	best := -1
	for id, layer := range s.layers {
		v, has := layer[trait]
		if !has {
			continue
		}
		p, _ := s.order.Priority(id)
		if p > best {
			best, value, stratumID, ok = p, v, id, true
		}
	}
	return value, stratumID, ok
}

// Value returns the value of trait in a single stratum.
func (s *Store) Value(stratumID, trait string) (string, bool) {
	v, ok := s.layers[stratumID][trait]
	return v, ok
}

// Strata returns the ids of the strata created so far, highest precedence
// first.
func (s *Store) Strata() []string {
	ids := make([]string, 0, len(s.layers))
	for id := range s.layers {
		ids = append(ids, id)
	}
	s.order.sortBottomToTop(ids)
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

// Traits returns every trait defined in any stratum, sorted.
func (s *Store) Traits() []string {
	seen := make(map[string]bool)
	var traits []string
	for _, layer := range s.layers {
		for t := range layer {
			if !seen[t] {
				seen[t] = true
				traits = append(traits, t)
			}
		}
	}
	sort.Strings(traits)
	return traits
}

// Snapshot returns a deep copy of every stratum's values.
func (s *Store) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string, len(s.layers))
	for id, layer := range s.layers {
		cp := make(map[string]string, len(layer))
		for k, v := range layer {
			cp[k] = v
		}
		out[id] = cp
	}
	return out
}
