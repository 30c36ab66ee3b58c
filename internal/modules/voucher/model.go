package voucher

import (
	"time"

	"github.com/google/uuid"
)

// Type determines how a voucher's value is applied to an order subtotal.
type Type string

const (
	TypePercent Type = "PERCENT" // Value is a percentage of the subtotal
	TypeFixed   Type = "FIXED"   // Value is a flat amount
)

// Voucher is a discount code redeemable at checkout.
type Voucher struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Type       Type      `json:"type"`
	Value      float64   `json:"value"`
	MinOrder   float64   `json:"min_order"`
	StartsAt   time.Time `json:"starts_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	UsageLimit int       `json:"usage_limit"` // 0 means unlimited
	UsedCount  int       `json:"used_count"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
