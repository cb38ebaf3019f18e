package types

// Capability names reported by capability.Names.
const (
	CapabilityLocalData       = "local-data"
	CapabilitySelectableStyle = "selectable-style"
	CapabilitySearchable      = "searchable"
	CapabilityLayered         = "layered"
)

// LocalDataHolder is implemented by members whose data may come from a local
// file rather than a remote service.
type LocalDataHolder interface {
	// HasLocalData reports whether the member's data is held locally.
	HasLocalData() bool
}

// SelectableStyle is implemented by members that offer a fixed set of styles
// for one style group and resolve the active style from their strata.
type SelectableStyle interface {
	// StyleGroup returns the identity of the style group.
	StyleGroup() string

	// AvailableStyles returns the enumerated style options. The result is
	// not affected by strata.
	AvailableStyles() []AvailableStyle

	// ActiveStyleID returns the effective style id. The second result is
	// false when no stratum defines a value for the group.
	ActiveStyleID() (string, bool)

	// ChooseActiveStyle records styleID in the given stratum. Returns an
	// *InvalidStyleError when styleID is not one of AvailableStyles, in
	// which case no stratum is modified.
	ChooseActiveStyle(stratumID, styleID string) error
}

// SearchableItem is implemented by members that can construct an item search
// provider from their configuration.
type SearchableItem interface {
	Member

	// ItemSearchProvider builds the provider configured for this member.
	ItemSearchProvider() (ItemSearchProvider, error)
}

// Layered is implemented by members whose traits are stored in strata.
type Layered interface {
	Strata() TraitStore
}
