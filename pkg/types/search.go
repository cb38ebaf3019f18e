package types

import "context"

// ItemSearchProvider searches the items behind a single catalog member.
type ItemSearchProvider interface {
	// Initialize loads whatever the provider needs before searching.
	Initialize(ctx context.Context) error

	// Search returns records matching query. Returns
	// ErrProviderNotInitialized if Initialize has not succeeded.
	Search(ctx context.Context, query string) ([]ItemSearchResult, error)
}

// ItemSearchResult is one match returned by an ItemSearchProvider.
type ItemSearchResult struct {
	MemberID string            `json:"member_id,omitempty"`
	ID       string            `json:"id"`
	Name     string            `json:"name,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}
