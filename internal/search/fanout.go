package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// DefaultMaxConcurrency bounds SearchAll when FanOutOptions leaves it unset.
const DefaultMaxConcurrency = 4

// FanOutOptions tune SearchAll.
type FanOutOptions struct {
	MaxConcurrency int
	Logger         *slog.Logger
}

// SearchAll builds each member's provider, initializes it and runs query,
// with up to MaxConcurrency members in flight. Results carry the member id
// and are sorted by member id, then record id. The first failure cancels the
// remaining searches and is returned.
func SearchAll(ctx context.Context, items []types.SearchableItem, query string, opts FanOutOptions) ([]types.ItemSearchResult, error) {
	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	p := pool.NewWithResults[[]types.ItemSearchResult]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(limit)

	for _, item := range items {
		p.Go(func(ctx context.Context) ([]types.ItemSearchResult, error) {
			return searchOne(ctx, item, query, log)
		})
	}

	batches, err := p.Wait()
	if err != nil {
		return nil, err
	}

	var all []types.ItemSearchResult
	for _, b := range batches {
		all = append(all, b...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].MemberID != all[j].MemberID {
			return all[i].MemberID < all[j].MemberID
		}
		return all[i].ID < all[j].ID
	})
	if all == nil {
		all = []types.ItemSearchResult{}
	}
	return all, nil
}

func searchOne(ctx context.Context, item types.SearchableItem, query string, log *slog.Logger) ([]types.ItemSearchResult, error) {
	provider, err := item.ItemSearchProvider()
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", item.ID(), err)
	}
	if err := provider.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("member %s: initialize: %w", item.ID(), err)
	}
	results, err := provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("member %s: search: %w", item.ID(), err)
	}
	for i := range results {
		results[i].MemberID = item.ID()
	}
	log.Debug("member searched",
		slog.String("member", item.ID()),
		slog.Int("results", len(results)))
	return results, nil
}
