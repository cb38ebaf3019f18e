// Package style implements types.SelectableStyle on top of a trait store.
package style

import (
	"fmt"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// traitPrefix namespaces style selections inside a member's trait store.
const traitPrefix = "activeStyle:"

// TraitKey returns the trait under which the active style of group is stored.
func TraitKey(group string) string {
	return traitPrefix + group
}

// Resolver exposes one style group of a member. Available styles come from
// the member's definition and are fixed; the active style is read from the
// store on every call.
type Resolver struct {
	group  string
	styles []types.AvailableStyle
	index  map[string]int
	store  types.TraitStore
}

var _ types.SelectableStyle = (*Resolver)(nil)

// NewResolver returns a resolver for group. Returns ErrInvalidKey for an
// empty group and ErrDuplicateStyle if two styles share an id.
func NewResolver(group string, styles []types.AvailableStyle, store types.TraitStore) (*Resolver, error) {
	if group == "" {
		return nil, fmt.Errorf("style group: %w", types.ErrInvalidKey)
	}
	r := &Resolver{
		group:  group,
		styles: make([]types.AvailableStyle, len(styles)),
		index:  make(map[string]int, len(styles)),
		store:  store,
	}
	copy(r.styles, styles)
	for i, s := range r.styles {
		if s.ID == "" {
			return nil, fmt.Errorf("style %d in group %q: %w", i, group, types.ErrInvalidKey)
		}
		if _, dup := r.index[s.ID]; dup {
			return nil, fmt.Errorf("style %q in group %q: %w", s.ID, group, types.ErrDuplicateStyle)
		}
		r.index[s.ID] = i
	}
	return r, nil
}

// StyleGroup returns the group identity.
func (r *Resolver) StyleGroup() string {
	return r.group
}

// AvailableStyles returns a copy of the style options.
func (r *Resolver) AvailableStyles() []types.AvailableStyle {
	out := make([]types.AvailableStyle, len(r.styles))
	copy(out, r.styles)
	return out
}

// ActiveStyleID returns the effective style id from the store.
func (r *Resolver) ActiveStyleID() (string, bool) {
	return r.store.EffectiveValue(TraitKey(r.group))
}

// ActiveStyle returns the effective style. The second result is false when
// no stratum selects a style or the selected id is no longer available.
func (r *Resolver) ActiveStyle() (types.AvailableStyle, bool) {
	id, ok := r.ActiveStyleID()
	if !ok {
		return types.AvailableStyle{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return types.AvailableStyle{}, false
	}
	return r.styles[i], true
}

// ChooseActiveStyle validates styleID and records it in stratumID.
// Writing into a stratum below one that already holds a value is accepted
// but does not change ActiveStyleID.
func (r *Resolver) ChooseActiveStyle(stratumID, styleID string) error {
	if _, ok := r.index[styleID]; !ok {
		return &types.InvalidStyleError{
			Group:     r.group,
			StyleID:   styleID,
			Available: r.ids(),
		}
	}
	return r.store.SetValue(stratumID, TraitKey(r.group), styleID)
}

// ClearActiveStyle removes the selection held by stratumID.
func (r *Resolver) ClearActiveStyle(stratumID string) error {
	return r.store.ClearValue(stratumID, TraitKey(r.group))
}

func (r *Resolver) ids() []string {
	ids := make([]string, len(r.styles))
	for i, s := range r.styles {
		ids[i] = s.ID
	}
	return ids
}
