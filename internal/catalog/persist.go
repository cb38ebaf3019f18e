package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mesh-intelligence/catalog/internal/style"
	"github.com/mesh-intelligence/catalog/pkg/capability"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// snapshotter is implemented by *strata.Store.
type snapshotter interface {
	Snapshot() map[string]map[string]string
}

// SaveStrata writes an item record for every member and every value held in
// a user-range stratum. Persisted values that no longer exist in memory are
// deleted.
func (c *Catalog) SaveStrata(ws types.Workspace) error {
	items, err := ws.GetTable(types.ItemsTable)
	if err != nil {
		return err
	}
	records, err := ws.GetTable(types.StrataTable)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, m := range c.items {
		if err := saveItem(items, m, now); err != nil {
			return err
		}
		if err := c.saveMemberStrata(records, m, now); err != nil {
			return err
		}
	}
	return nil
}

func saveItem(items types.Table, m types.Member, now time.Time) error {
	rec := types.ItemRecord{ItemID: m.ID(), Type: m.Type(), Name: m.Name(), CreatedAt: now, UpdatedAt: now}
	existing, err := items.Get(m.ID())
	switch {
	case err == nil:
		if prev, ok := existing.(*types.ItemRecord); ok {
			rec.CreatedAt = prev.CreatedAt
		}
	case !errors.Is(err, types.ErrNotFound):
		return fmt.Errorf("get item %s: %w", m.ID(), err)
	}
	if _, err := items.Set(m.ID(), &rec); err != nil {
		return fmt.Errorf("save item %s: %w", m.ID(), err)
	}
	return nil
}

func (c *Catalog) saveMemberStrata(records types.Table, m types.Member, now time.Time) error {
	want := make(map[string]types.StratumRecord)
	if l, ok := capability.As[types.Layered](m); ok {
		if s, ok := l.Strata().(snapshotter); ok {
			for stratumID, traits := range s.Snapshot() {
				if !c.order.IsUserStratum(stratumID) {
					continue
				}
				for trait, value := range traits {
					r := types.StratumRecord{ItemID: m.ID(), StratumID: stratumID, Trait: trait, Value: value, UpdatedAt: now}
					want[r.Key()] = r
				}
			}
		}
	}

	have, err := records.Fetch(map[string]any{"item_id": m.ID()})
	if err != nil {
		return fmt.Errorf("fetch strata of %s: %w", m.ID(), err)
	}
	for _, v := range have {
		r, ok := v.(*types.StratumRecord)
		if !ok {
			continue
		}
		next, keep := want[r.Key()]
		switch {
		case keep && next.Value == r.Value:
			delete(want, r.Key())
		case keep:
			// overwritten below
		default:
			if err := records.Delete(r.Key()); err != nil && !errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("delete stratum value %s/%s of %s: %w", r.StratumID, r.Trait, m.ID(), err)
			}
		}
	}
	for key, r := range want {
		if _, err := records.Set(key, &r); err != nil {
			return fmt.Errorf("save stratum value %s/%s of %s: %w", r.StratumID, r.Trait, m.ID(), err)
		}
	}
	return nil
}

// RestoreStrata re-applies persisted user-range values to loaded members and
// returns how many were applied. Values for members that are no longer in the
// catalog are skipped. Values in strata outside the user range are ignored.
// A persisted style choice that is no longer available, or that names a style
// group the member no longer has, is skipped.
func (c *Catalog) RestoreStrata(ws types.Workspace) (int, error) {
	records, err := ws.GetTable(types.StrataTable)
	if err != nil {
		return 0, err
	}
	all, err := records.Fetch(nil)
	if err != nil {
		return 0, fmt.Errorf("fetch strata: %w", err)
	}

	applied := 0
	for _, v := range all {
		r, ok := v.(*types.StratumRecord)
		if !ok {
			continue
		}
		attrs := []any{slog.String("item", r.ItemID), slog.String("stratum", r.StratumID), slog.String("trait", r.Trait)}
		m, ok := c.index[r.ItemID]
		if !ok {
			c.log.Warn("skipping persisted value for unknown member", attrs...)
			continue
		}
		if !c.order.IsUserStratum(r.StratumID) {
			c.log.Debug("ignoring persisted value outside user strata", attrs...)
			continue
		}
		if err := c.apply(m, r); err != nil {
			if errors.Is(err, types.ErrInvalidStyle) {
				c.log.Warn("skipping persisted style", append(attrs, slog.String("error", err.Error()))...)
				continue
			}
			return applied, fmt.Errorf("restore %s/%s of %s: %w", r.StratumID, r.Trait, r.ItemID, err)
		}
		applied++
	}
	return applied, nil
}

func (c *Catalog) apply(m types.Member, r *types.StratumRecord) error {
	if group, ok := strings.CutPrefix(r.Trait, style.TraitKey("")); ok {
		sel, ok := capability.As[types.SelectableStyle](m)
		if !ok || sel.StyleGroup() != group {
			return fmt.Errorf("%w: member %s has no style group %q", types.ErrInvalidStyle, m.ID(), group)
		}
		return sel.ChooseActiveStyle(r.StratumID, r.Value)
	}
	l, ok := capability.As[types.Layered](m)
	if !ok {
		return fmt.Errorf("%w: %s is not layered", types.ErrCapabilityAbsent, m.ID())
	}
	return l.Strata().SetValue(r.StratumID, r.Trait, r.Value)
}
