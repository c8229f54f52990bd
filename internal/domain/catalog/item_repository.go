package catalog

import "context"

// ItemRepository defines the interface for catalog item persistence.
// Implementations return items in catalog order.
type ItemRepository interface {
	// FindAll returns every item in catalog order
	FindAll(ctx context.Context) ([]Item, error)

	// FindByID returns one item or shared.ErrNotFound
	FindByID(ctx context.Context, id string) (*Item, error)

	// FindByCategory returns the items of one category in catalog order
	FindByCategory(ctx context.Context, categoryID string) ([]Item, error)
}

// ItemWriter replaces the stored catalog. Used by the seed tooling.
type ItemWriter interface {
	// SaveAll upserts items, recording their slice position as catalog order
	SaveAll(ctx context.Context, items []Item) error
}
