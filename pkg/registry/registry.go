// Package registry maps string type keys to factories.
//
// A Registry is populated once at startup and read many times thereafter.
// Keys are matched exactly and case-sensitively. Registering an existing key
// is rejected so that two components claiming the same key surface as a
// configuration error instead of one silently replacing the other.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Registry holds factories of type F keyed by type key.
type Registry[F any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]F
}

// New creates an empty registry. kind names what the registry holds and
// appears in error messages (for example "item search provider").
func New[F any](kind string) *Registry[F] {
	return &Registry[F]{
		kind:      kind,
		factories: make(map[string]F),
	}
}

// Kind returns the label given to New.
func (r *Registry[F]) Kind() string {
	return r.kind
}

// Register associates factory with key.
// Returns ErrInvalidKey for an empty key, ErrNilFactory for a nil factory and
// a *types.KeyConflictError if key is already registered.
func (r *Registry[F]) Register(key string, factory F) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	if isNilFactory(factory) {
		return fmt.Errorf("%s %q: %w", r.kind, key, types.ErrNilFactory)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return &types.KeyConflictError{Kind: r.kind, Key: key}
	}
	r.factories[key] = factory
	return nil
}

// MustRegister is Register for package initialization; it panics on error.
func (r *Registry[F]) MustRegister(key string, factory F) {
	if err := r.Register(key, factory); err != nil {
		panic(err)
	}
}

// Get returns the factory registered under key.
// Returns a *types.KeyNotFoundError listing the known keys if key is not
// registered.
func (r *Registry[F]) Get(key string) (F, error) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		var zero F
		return zero, &types.KeyNotFoundError{Kind: r.kind, Key: key, Known: r.Keys()}
	}
	return factory, nil
}

// Has reports whether key is registered.
func (r *Registry[F]) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[key]
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry[F]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered keys.
func (r *Registry[F]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

func isNilFactory(f any) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}
