package order

import "context"

// Repository defines order data storage.
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status) error
}
