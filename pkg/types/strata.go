package types

// Common stratum identifiers. Their precedence is fixed by strata.DefaultOrder,
// lowest first: defaults, (load strata), underride, definition, override, user.
const (
	StratumDefaults   = "defaults"
	StratumUnderride  = "underride"
	StratumDefinition = "definition"
	StratumOverride   = "override"
	StratumUser       = "user"
)

// TraitStore holds trait values in named, precedence-ordered strata.
// SetValue and ClearValue are the only mutation entry points.
type TraitStore interface {
	// SetValue records value for trait in the given stratum, creating the
	// stratum if needed and overwriting any previous value.
	SetValue(stratumID, trait, value string) error

	// ClearValue removes the value for trait from the given stratum only.
	ClearValue(stratumID, trait string) error

	// EffectiveValue returns the value held by the highest-precedence
	// stratum that defines trait.
	EffectiveValue(trait string) (string, bool)

	// Value returns the value stored for trait in a single stratum.
	Value(stratumID, trait string) (string, bool)

	// Strata returns the ids of strata that exist, highest precedence first.
	Strata() []string
}
