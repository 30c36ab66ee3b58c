package document

import "context"

// Repository defines document metadata storage.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context, kind string) ([]*Document, error)
	Delete(ctx context.Context, id string) error
}
