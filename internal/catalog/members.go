package catalog

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/catalog/internal/search"
	"github.com/mesh-intelligence/catalog/internal/strata"
	"github.com/mesh-intelligence/catalog/pkg/registry"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Built-in member type keys.
const (
	TypeGeoJSON = "geojson"
	TypeCSV     = "csv"
	TypeWMS     = "wms"
)

// Style groups used by the built-in member types.
const (
	GroupDefault = "default"
	GroupColumns = "columns"
)

// Env carries the shared collaborators a MemberFactory may use.
type Env struct {
	Order     *strata.Order
	Providers *search.Catalog
	Logger    *slog.Logger
}

// MemberFactory builds a member from its definition. def.ID is always set.
type MemberFactory func(def MemberDefinition, env Env) (types.Member, error)

// NewMemberRegistry returns a registry holding the built-in member types.
func NewMemberRegistry() *registry.Registry[MemberFactory] {
	r := registry.New[MemberFactory]("catalog member")
	r.MustRegister(TypeGeoJSON, newGeoJSONItem)
	r.MustRegister(TypeCSV, newCSVItem)
	r.MustRegister(TypeWMS, newWMSItem)
	return r
}

// GeoJSONItem is a vector layer read from a URL or a local file.
type GeoJSONItem struct {
	*member
	dataSource
	styleSelector
	searchConfig
}

var (
	_ types.LocalDataHolder = (*GeoJSONItem)(nil)
	_ types.SelectableStyle = (*GeoJSONItem)(nil)
	_ types.SearchableItem  = (*GeoJSONItem)(nil)
	_ types.Layered         = (*GeoJSONItem)(nil)
)

func newGeoJSONItem(def MemberDefinition, env Env) (types.Member, error) {
	m, err := newMember(def, env)
	if err != nil {
		return nil, err
	}
	sel, err := newStyleSelector(GroupDefault, def, m.store)
	if err != nil {
		return nil, err
	}
	return &GeoJSONItem{
		member:        m,
		dataSource:    dataSource{url: def.URL, file: def.File},
		styleSelector: sel,
		searchConfig:  searchConfig{def: def.Search, providers: env.Providers, log: env.Logger},
	}, nil
}

// CSVItem is a table whose styles are its plottable columns.
type CSVItem struct {
	*member
	dataSource
	styleSelector
	searchConfig
}

var (
	_ types.LocalDataHolder = (*CSVItem)(nil)
	_ types.SelectableStyle = (*CSVItem)(nil)
	_ types.SearchableItem  = (*CSVItem)(nil)
)

func newCSVItem(def MemberDefinition, env Env) (types.Member, error) {
	m, err := newMember(def, env)
	if err != nil {
		return nil, err
	}
	sel, err := newStyleSelector(GroupColumns, def, m.store)
	if err != nil {
		return nil, err
	}
	return &CSVItem{
		member:        m,
		dataSource:    dataSource{url: def.URL, file: def.File},
		styleSelector: sel,
		searchConfig:  searchConfig{def: def.Search, providers: env.Providers, log: env.Logger},
	}, nil
}

// WMSItem is a remote map service layer. Its style group is the layer name.
// It never holds local data and has no item search.
type WMSItem struct {
	*member
	styleSelector
	url string
}

var _ types.SelectableStyle = (*WMSItem)(nil)

func newWMSItem(def MemberDefinition, env Env) (types.Member, error) {
	if def.URL == "" {
		return nil, fmt.Errorf("%w: wms member %q needs a url", types.ErrInvalidDefinition, def.ID)
	}
	if def.File != "" {
		return nil, fmt.Errorf("%w: wms member %q cannot read a local file", types.ErrInvalidDefinition, def.ID)
	}
	m, err := newMember(def, env)
	if err != nil {
		return nil, err
	}
	group := def.Layers
	if group == "" {
		group = GroupDefault
	}
	sel, err := newStyleSelector(group, def, m.store)
	if err != nil {
		return nil, err
	}
	return &WMSItem{member: m, styleSelector: sel, url: def.URL}, nil
}

// URL returns the service endpoint.
func (w *WMSItem) URL() string { return w.url }
