package voucher

import "context"

// Repository defines voucher data storage.
type Repository interface {
	Create(ctx context.Context, v *Voucher) error
	GetByID(ctx context.Context, id string) (*Voucher, error)
	GetByCode(ctx context.Context, code string) (*Voucher, error)
	List(ctx context.Context, activeOnly bool) ([]*Voucher, error)
	Update(ctx context.Context, v *Voucher) error
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
}
