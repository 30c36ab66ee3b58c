package brand

import "context"

// Repository defines brand data storage.
type Repository interface {
	Create(ctx context.Context, b *Brand) error
	GetByID(ctx context.Context, id string) (*Brand, error)
	List(ctx context.Context, activeOnly bool) ([]*Brand, error)
	Update(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id string) error
}
