// Package capability answers "does this value support capability C?" for
// catalog members. A capability is a Go interface from package types; a value
// supports it when its dynamic type has the interface's methods, whatever
// else the value is. A type that happens to carry a method with the same
// name and signature but a different meaning also passes.
package capability

import (
	"reflect"
	"sort"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Is reports whether candidate implements C. It never panics: nil, typed nil
// pointers and values of unrelated types all report false.
func Is[C any](candidate any) bool {
	_, ok := As[C](candidate)
	return ok
}

// As returns candidate viewed as C. The second result is false when Is would
// report false, in which case the first result is the zero value.
func As[C any](candidate any) (C, bool) {
	var zero C
	if isNil(candidate) {
		return zero, false
	}
	c, ok := candidate.(C)
	if !ok {
		return zero, false
	}
	return c, true
}

// isNil reports whether v is nil or a typed nil of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// HasLocalData reports whether candidate implements types.LocalDataHolder.
// It does not call HasLocalData; see LocalData for that.
func HasLocalData(candidate any) bool {
	return Is[types.LocalDataHolder](candidate)
}

// LocalData reports whether candidate implements types.LocalDataHolder and
// currently holds local data.
func LocalData(candidate any) bool {
	h, ok := As[types.LocalDataHolder](candidate)
	return ok && h.HasLocalData()
}

// IsSelectableStyle reports whether candidate implements types.SelectableStyle.
func IsSelectableStyle(candidate any) bool {
	return Is[types.SelectableStyle](candidate)
}

// IsSearchable reports whether candidate implements types.SearchableItem.
func IsSearchable(candidate any) bool {
	return Is[types.SearchableItem](candidate)
}

// IsLayered reports whether candidate implements types.Layered.
func IsLayered(candidate any) bool {
	return Is[types.Layered](candidate)
}

// probes maps capability names to their probe.
var probes = map[string]func(any) bool{
	types.CapabilityLocalData:       HasLocalData,
	types.CapabilitySelectableStyle: IsSelectableStyle,
	types.CapabilitySearchable:      IsSearchable,
	types.CapabilityLayered:         IsLayered,
}

// Names returns the sorted names of every capability candidate implements.
// Returns an empty slice (not nil) when it implements none.
func Names(candidate any) []string {
	names := make([]string, 0, len(probes))
	for name, probe := range probes {
		if probe(candidate) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
