// Package catalog builds catalog members from definition files and keeps them
// addressable by id. Members are constructed through a type-keyed registry;
// their optional behaviour is discovered with package capability.
//
// Implements: catalog members (geojson, csv, wms), the member-type registry,
// definition loading and validation, and persistence of user strata.
package catalog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/catalog/internal/search"
	"github.com/mesh-intelligence/catalog/internal/strata"
	"github.com/mesh-intelligence/catalog/pkg/capability"
	"github.com/mesh-intelligence/catalog/pkg/registry"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Options configures a Catalog. Nil fields get defaults.
type Options struct {
	Order     *strata.Order
	Members   *registry.Registry[MemberFactory]
	Providers *search.Catalog
	Logger    *slog.Logger
}

// Catalog holds members in load order.
type Catalog struct {
	order     *strata.Order
	members   *registry.Registry[MemberFactory]
	providers *search.Catalog
	log       *slog.Logger

	items []types.Member
	index map[string]types.Member
}

// New creates an empty catalog.
func New(opts Options) *Catalog {
	c := &Catalog{
		order:     opts.Order,
		members:   opts.Members,
		providers: opts.Providers,
		log:       opts.Logger,
		index:     make(map[string]types.Member),
	}
	if c.order == nil {
		c.order = strata.DefaultOrder()
	}
	if c.members == nil {
		c.members = NewMemberRegistry()
	}
	if c.providers == nil {
		c.providers = search.NewCatalog()
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Order returns the stratum precedence shared by every member.
func (c *Catalog) Order() *strata.Order { return c.order }

// Providers returns the item search provider catalog.
func (c *Catalog) Providers() *search.Catalog { return c.providers }

// MemberTypes returns the registered member type keys.
func (c *Catalog) MemberTypes() []string { return c.members.Keys() }

// LoadFile reads, validates and loads the definition at path.
func (c *Catalog) LoadFile(path string) error {
	def, err := LoadDefinition(path)
	if err != nil {
		return err
	}
	return c.Load(def)
}

// Load registers the definition's load strata and adds its members. Either
// every member is added or none is.
func (c *Catalog) Load(def *Definition) error {
	trial := c.order.Clone()
	for _, id := range def.LoadStrata {
		if err := trial.AddLoadStratum(id); err != nil {
			return fmt.Errorf("load stratum %q: %w", id, err)
		}
	}
	for _, id := range def.LoadStrata {
		if err := c.order.AddLoadStratum(id); err != nil {
			return fmt.Errorf("load stratum %q: %w", id, err)
		}
	}

	seen := make(map[string]bool, len(def.Catalog))
	built := make([]types.Member, 0, len(def.Catalog))
	for i, md := range def.Catalog {
		m, err := c.build(md, len(c.items)+i)
		if err != nil {
			return fmt.Errorf("catalog[%d]: %w", i, err)
		}
		if seen[m.ID()] {
			return fmt.Errorf("catalog[%d]: %w: %s", i, types.ErrDuplicateMember, m.ID())
		}
		seen[m.ID()] = true
		built = append(built, m)
	}

	for _, m := range built {
		c.insert(m)
	}
	c.log.Debug("catalog loaded",
		slog.Int("members", len(built)),
		slog.Int("load_strata", len(def.LoadStrata)))
	return nil
}

// Add builds a single member and adds it to the catalog.
func (c *Catalog) Add(md MemberDefinition) (types.Member, error) {
	m, err := c.build(md, len(c.items))
	if err != nil {
		return nil, err
	}
	c.insert(m)
	return m, nil
}

// memberNamespace scopes ids derived from member definitions.
var memberNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mesh-intelligence/catalog/member"))

// DerivedID returns the id of a member defined without one. It depends only
// on the definition and its position in the catalog, so reloading the same
// catalog file yields the same ids.
func DerivedID(md MemberDefinition, pos int) string {
	name := strings.Join([]string{md.Type, md.URL, md.File, md.Name, strconv.Itoa(pos)}, "\x00")
	return uuid.NewSHA1(memberNamespace, []byte(name)).String()
}

func (c *Catalog) build(md MemberDefinition, pos int) (types.Member, error) {
	factory, err := c.members.Get(md.Type)
	if err != nil {
		return nil, err
	}
	if md.ID == "" {
		md.ID = DerivedID(md, pos)
	}
	if _, exists := c.index[md.ID]; exists {
		return nil, fmt.Errorf("%w: %s", types.ErrDuplicateMember, md.ID)
	}
	m, err := factory(md, Env{Order: c.order, Providers: c.providers, Logger: c.log})
	if err != nil {
		return nil, fmt.Errorf("build %s member %q: %w", md.Type, md.ID, err)
	}
	return m, nil
}

func (c *Catalog) insert(m types.Member) {
	c.items = append(c.items, m)
	c.index[m.ID()] = m
}

// Member returns the member with the given id.
func (c *Catalog) Member(id string) (types.Member, error) {
	m, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrMemberNotFound, id)
	}
	return m, nil
}

// Members returns every member in load order.
func (c *Catalog) Members() []types.Member {
	out := make([]types.Member, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of members.
func (c *Catalog) Len() int { return len(c.items) }

type searchConfigurer interface {
	SearchConfigured() bool
}

// Searchable returns the members that can provide item search. Members that
// implement the capability but have no search configuration are left out.
func (c *Catalog) Searchable() []types.SearchableItem {
	var out []types.SearchableItem
	for _, m := range c.items {
		s, ok := capability.As[types.SearchableItem](m)
		if !ok {
			continue
		}
		if sc, ok := m.(searchConfigurer); ok && !sc.SearchConfigured() {
			continue
		}
		out = append(out, s)
	}
	return out
}
