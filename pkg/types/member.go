package types

// Member is the minimal surface every catalog member exposes. Everything else
// is an optional capability.
type Member interface {
	// ID returns the member's unique identifier within its catalog.
	ID() string

	// Type returns the type key the member was constructed from.
	Type() string

	// Name returns the effective display name.
	Name() string
}
