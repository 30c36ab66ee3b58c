package catalog

import "context"

// Repository defines the interface for catalog data storage.
// List and ListAll return products with their variants loaded; ListAll is
// the full-catalog snapshot the sync engine and inventory enrichment read.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, category string) ([]*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
