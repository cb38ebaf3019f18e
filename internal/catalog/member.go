package catalog

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/catalog/internal/search"
	"github.com/mesh-intelligence/catalog/internal/strata"
	"github.com/mesh-intelligence/catalog/internal/style"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Layered traits shared by every member.
const (
	TraitName        = "name"
	TraitDescription = "description"
)

// member holds what every catalog member has: identity and strata.
type member struct {
	id    string
	typ   string
	store *strata.Store
}

func newMember(def MemberDefinition, env Env) (*member, error) {
	m := &member{
		id:    def.ID,
		typ:   def.Type,
		store: strata.NewStore(env.Order),
	}
	if def.Name != "" {
		if err := m.store.SetValue(types.StratumDefinition, TraitName, def.Name); err != nil {
			return nil, err
		}
	}
	if def.Description != "" {
		if err := m.store.SetValue(types.StratumDefinition, TraitDescription, def.Description); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *member) ID() string   { return m.id }
func (m *member) Type() string { return m.typ }

// Name returns the effective name trait, or the id when no stratum names
// the member.
func (m *member) Name() string {
	if v, ok := m.store.EffectiveValue(TraitName); ok && v != "" {
		return v
	}
	return m.id
}

// Description returns the effective description trait.
func (m *member) Description() string {
	v, _ := m.store.EffectiveValue(TraitDescription)
	return v
}

// Strata returns the member's trait store.
func (m *member) Strata() types.TraitStore { return m.store }

// Store returns the concrete store for callers that need Resolve or Snapshot.
func (m *member) Store() *strata.Store { return m.store }

// styleSelector embeds a resolver so its methods become the member's.
type styleSelector struct {
	*style.Resolver
}

func newStyleSelector(group string, def MemberDefinition, store *strata.Store) (styleSelector, error) {
	r, err := style.NewResolver(group, def.Styles, store)
	if err != nil {
		return styleSelector{}, err
	}
	if def.DefaultStyle != "" {
		if err := r.ChooseActiveStyle(types.StratumDefaults, def.DefaultStyle); err != nil {
			return styleSelector{}, fmt.Errorf("default style: %w", err)
		}
	}
	if def.ActiveStyle != "" {
		if err := r.ChooseActiveStyle(types.StratumDefinition, def.ActiveStyle); err != nil {
			return styleSelector{}, fmt.Errorf("active style: %w", err)
		}
	}
	return styleSelector{Resolver: r}, nil
}

// dataSource records where a member's data comes from.
type dataSource struct {
	url  string
	file string
}

// HasLocalData reports whether the data comes from a local file.
func (d dataSource) HasLocalData() bool { return d.file != "" }

// URL returns the remote location, if any.
func (d dataSource) URL() string { return d.url }

// File returns the local file path, if any.
func (d dataSource) File() string { return d.file }

// searchConfig builds the member's item search provider on demand.
type searchConfig struct {
	def       *SearchDefinition
	providers *search.Catalog
	log       *slog.Logger
}

// SearchConfigured reports whether the member's definition has a search
// section.
func (s searchConfig) SearchConfigured() bool { return s.def != nil }

// ItemSearchProvider resolves the configured provider type and constructs
// it. Returns ErrSearchNotConfigured when there is no search section and a
// *search.ProviderNotFoundError for an unknown provider type.
func (s searchConfig) ItemSearchProvider() (types.ItemSearchProvider, error) {
	if s.def == nil {
		return nil, types.ErrSearchNotConfigured
	}
	return s.providers.Create(s.def.ProviderType, search.ProviderOptions{
		ResourceURL: s.def.ResourceURL,
		Options:     s.def.Options,
		Logger:      s.log,
	})
}
