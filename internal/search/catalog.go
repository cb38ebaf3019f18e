// Package search resolves item search providers by type key and runs
// searches across catalog members.
package search

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/catalog/pkg/registry"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// IndexedProviderType is the type key of the built-in provider.
const IndexedProviderType = "indexed"

// ProviderOptions are passed to a ProviderFactory. ResourceURL and Options
// come from the member's search configuration.
type ProviderOptions struct {
	ResourceURL string
	Options     map[string]any
	Logger      *slog.Logger
}

// ProviderFactory constructs an item search provider.
type ProviderFactory func(opts ProviderOptions) (types.ItemSearchProvider, error)

// ProviderNotFoundError reports a provider type key that is not registered.
type ProviderNotFoundError struct {
	Type  string
	Known []string
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("item search provider type %q not found (known: %s)", e.Type, strings.Join(e.Known, ", "))
}

// Is reports types.ErrKeyNotFound as a match.
func (e *ProviderNotFoundError) Is(target error) bool {
	return target == types.ErrKeyNotFound
}

// Catalog maps provider type keys to factories. It never substitutes a
// default provider for an unknown key.
type Catalog struct {
	providers *registry.Registry[ProviderFactory]
}

// NewCatalog returns a catalog holding the built-in "indexed" provider.
func NewCatalog() *Catalog {
	c := &Catalog{providers: registry.New[ProviderFactory]("item search provider")}
	c.providers.MustRegister(IndexedProviderType, NewIndexedProvider)
	return c
}

// Register adds a provider factory. Duplicate keys are rejected with a
// *types.KeyConflictError.
func (c *Catalog) Register(typeKey string, factory ProviderFactory) error {
	return c.providers.Register(typeKey, factory)
}

// Has reports whether typeKey is registered.
func (c *Catalog) Has(typeKey string) bool {
	return c.providers.Has(typeKey)
}

// Keys returns the registered type keys, sorted.
func (c *Catalog) Keys() []string {
	return c.providers.Keys()
}

// Lookup returns the factory for typeKey or a *ProviderNotFoundError.
func (c *Catalog) Lookup(typeKey string) (ProviderFactory, error) {
	f, err := c.providers.Get(typeKey)
	if err != nil {
		return nil, &ProviderNotFoundError{Type: typeKey, Known: c.providers.Keys()}
	}
	return f, nil
}

// Create looks up typeKey and invokes its factory with opts.
func (c *Catalog) Create(typeKey string, opts ProviderOptions) (types.ItemSearchProvider, error) {
	f, err := c.Lookup(typeKey)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	p, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("create %s search provider: %w", typeKey, err)
	}
	return p, nil
}
