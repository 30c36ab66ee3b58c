package inventory

import "context"

// Repository defines inventory data storage. Upsert is create-or-overwrite:
// the sync engine writes through it unconditionally, last write wins.
// There is no delete in the sync path; records orphaned by catalog removals
// stay behind on purpose.
type Repository interface {
	Upsert(ctx context.Context, item *Item) error
	Get(ctx context.Context, productID, variantID string) (*Item, error)
	ListAll(ctx context.Context) ([]*Item, error)
	AdjustStock(ctx context.Context, productID, variantID string, delta int) error
}
