// Package strata stores trait values in named layers and resolves the
// effective value of a trait from a fixed precedence order.
//
// Precedence is configuration, not insertion order: an Order assigns every
// known stratum id a priority and a Store consults it on every read.
package strata

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Priority ranges. Each stratum added to a range takes the next priority
// inside it, so later additions outrank earlier ones within the range.
const (
	defaultsBase   = 0
	loadBase       = 1000
	definitionBase = 2000
	userBase       = 3000
	rangeSize      = 1000
)

// Order is a total precedence order over stratum ids.
type Order struct {
	priorities map[string]int
	next       map[int]int // range base -> next free priority
}

// NewOrder returns an empty Order.
func NewOrder() *Order {
	return &Order{
		priorities: make(map[string]int),
		next: map[int]int{
			defaultsBase:   defaultsBase,
			loadBase:       loadBase,
			definitionBase: definitionBase,
			userBase:       userBase,
		},
	}
}

// DefaultOrder returns the standard order, lowest precedence first:
// defaults, underride, definition, override, user. Load strata added later
// sit between defaults and underride.
func DefaultOrder() *Order {
	o := NewOrder()
	mustAdd(o.AddDefaultStratum(types.StratumDefaults))
	mustAdd(o.AddDefinitionStratum(types.StratumUnderride))
	mustAdd(o.AddDefinitionStratum(types.StratumDefinition))
	mustAdd(o.AddUserStratum(types.StratumOverride))
	mustAdd(o.AddUserStratum(types.StratumUser))
	return o
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

// AddDefaultStratum adds id to the defaults range.
func (o *Order) AddDefaultStratum(id string) error {
	return o.add(id, defaultsBase)
}

// AddLoadStratum adds id to the range used by strata filled from loaded
// data, above defaults and below definition strata.
func (o *Order) AddLoadStratum(id string) error {
	return o.add(id, loadBase)
}

// AddDefinitionStratum adds id to the definition range.
func (o *Order) AddDefinitionStratum(id string) error {
	return o.add(id, definitionBase)
}

// AddUserStratum adds id to the user range, the highest precedence.
func (o *Order) AddUserStratum(id string) error {
	return o.add(id, userBase)
}

// add is a no-op when id is already in the requested range.
func (o *Order) add(id string, base int) error {
	if id == "" {
		return types.ErrInvalidKey
	}
	if p, ok := o.priorities[id]; ok {
		if rangeOf(p) == base {
			return nil
		}
		return fmt.Errorf("stratum %q: %w", id, types.ErrStratumConflict)
	}
	p := o.next[base]
	if p >= base+rangeSize {
		return fmt.Errorf("stratum %q: range %d is full", id, base)
	}
	o.priorities[id] = p
	o.next[base] = p + 1
	return nil
}

func rangeOf(priority int) int {
	if priority >= userBase {
		return userBase
	}
	return priority - priority%rangeSize
}

// Priority returns the priority of id. Higher wins.
func (o *Order) Priority(id string) (int, bool) {
	p, ok := o.priorities[id]
	return p, ok
}

// Has reports whether id is part of the order.
func (o *Order) Has(id string) bool {
	_, ok := o.priorities[id]
	return ok
}

// IsUserStratum reports whether id is in the user range.
func (o *Order) IsUserStratum(id string) bool {
	p, ok := o.priorities[id]
	return ok && rangeOf(p) == userBase
}

// IsDefinitionStratum reports whether id is in the definition range.
func (o *Order) IsDefinitionStratum(id string) bool {
	p, ok := o.priorities[id]
	return ok && rangeOf(p) == definitionBase
}

// IsLoadStratum reports whether id is in the load range.
func (o *Order) IsLoadStratum(id string) bool {
	p, ok := o.priorities[id]
	return ok && rangeOf(p) == loadBase
}

// TopToBottom returns every known stratum id, highest precedence first.
func (o *Order) TopToBottom() []string {
	ids := o.BottomToTop()
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

// BottomToTop returns every known stratum id, lowest precedence first.
func (o *Order) BottomToTop() []string {
	ids := make([]string, 0, len(o.priorities))
	for id := range o.priorities {
		ids = append(ids, id)
	}
	o.sortBottomToTop(ids)
	return ids
}

func (o *Order) sortBottomToTop(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return o.priorities[ids[i]] < o.priorities[ids[j]]
	})
}

// Clone returns an independent copy of o.
func (o *Order) Clone() *Order {
	c := NewOrder()
	for id, p := range o.priorities {
		c.priorities[id] = p
	}
	for base, next := range o.next {
		c.next[base] = next
	}
	return c
}
