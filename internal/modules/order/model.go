package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipping, StatusCancelled},
	StatusShipping:  {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition returns true if the status change is allowed.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Order is a customer order recorded through the shop and managed from the
// admin dashboard.
type Order struct {
	ID              uuid.UUID    `json:"id"`
	OrderNumber     string       `json:"order_number"`
	CustomerName    string       `json:"customer_name"`
	CustomerPhone   string       `json:"customer_phone"`
	ShippingAddress string       `json:"shipping_address"`
	Status          Status       `json:"status"`
	Subtotal        float64      `json:"subtotal"`
	Discount        float64      `json:"discount"`
	VoucherCode     string       `json:"voucher_code,omitempty"`
	Total           float64      `json:"total"`
	Notes           string       `json:"notes,omitempty"`
	Items           []*OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// OrderItem is a single line item, pinned to the variant it was sold as.
type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   uuid.UUID `json:"product_id"`
	VariantID   uuid.UUID `json:"variant_id"`
	VariantName string    `json:"variant_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
}

// CartItem describes one requested line during order placement.
type CartItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	ShippingAddress string     `json:"shipping_address"`
	Items           []CartItem `json:"items"`
	VoucherCode     string     `json:"voucher_code,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
