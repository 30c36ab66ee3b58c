package voucher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines voucher business logic.
type Service interface {
	CreateVoucher(ctx context.Context, req VoucherRequest) (*Voucher, error)
	GetVoucher(ctx context.Context, id string) (*Voucher, error)
	ListVouchers(ctx context.Context, activeOnly bool) ([]*Voucher, error)
	UpdateVoucher(ctx context.Context, id string, req VoucherRequest) (*Voucher, error)
	DeleteVoucher(ctx context.Context, id string) error

	// Redeem validates the code against the given order subtotal and returns
	// the discount amount, incrementing the voucher's usage count.
	Redeem(ctx context.Context, code string, subtotal float64) (float64, error)
}

// VoucherRequest holds the data for creating or updating a voucher.
type VoucherRequest struct {
	Code       string    `json:"code"`
	Type       Type      `json:"type"`
	Value      float64   `json:"value"`
	MinOrder   float64   `json:"min_order"`
	StartsAt   time.Time `json:"starts_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	UsageLimit int       `json:"usage_limit"`
	IsActive   *bool     `json:"is_active,omitempty"`
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new voucher service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func validate(req VoucherRequest) error {
	if req.Code == "" {
		return fmt.Errorf("code is required")
	}
	if req.Type != TypePercent && req.Type != TypeFixed {
		return fmt.Errorf("type must be PERCENT or FIXED")
	}
	if req.Value <= 0 {
		return fmt.Errorf("value must be greater than 0")
	}
	if req.Type == TypePercent && req.Value > 100 {
		return fmt.Errorf("percent value must not exceed 100")
	}
	if !req.ExpiresAt.IsZero() && !req.StartsAt.IsZero() && req.ExpiresAt.Before(req.StartsAt) {
		return fmt.Errorf("expires_at must be after starts_at")
	}
	return nil
}

func (s *service) CreateVoucher(ctx context.Context, req VoucherRequest) (*Voucher, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	v := &Voucher{
		ID:         uuid.New(),
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:       req.Type,
		Value:      req.Value,
		MinOrder:   req.MinOrder,
		StartsAt:   req.StartsAt,
		ExpiresAt:  req.ExpiresAt,
		UsageLimit: req.UsageLimit,
		IsActive:   active,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetVoucher(ctx context.Context, id string) (*Voucher, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListVouchers(ctx context.Context, activeOnly bool) ([]*Voucher, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) UpdateVoucher(ctx context.Context, id string, req VoucherRequest) (*Voucher, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	v.Type = req.Type
	v.Value = req.Value
	v.MinOrder = req.MinOrder
	v.StartsAt = req.StartsAt
	v.ExpiresAt = req.ExpiresAt
	v.UsageLimit = req.UsageLimit
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) DeleteVoucher(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Redeem(ctx context.Context, code string, subtotal float64) (float64, error) {
	v, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 0, fmt.Errorf("voucher not found")
	}
	now := s.now()
	if !v.IsActive {
		return 0, fmt.Errorf("voucher %s is not active", v.Code)
	}
	if !v.StartsAt.IsZero() && now.Before(v.StartsAt) {
		return 0, fmt.Errorf("voucher %s is not valid yet", v.Code)
	}
	if !v.ExpiresAt.IsZero() && now.After(v.ExpiresAt) {
		return 0, fmt.Errorf("voucher %s has expired", v.Code)
	}
	if subtotal < v.MinOrder {
		return 0, fmt.Errorf("voucher %s requires a minimum order of %.2f", v.Code, v.MinOrder)
	}
	if v.UsageLimit > 0 && v.UsedCount >= v.UsageLimit {
		return 0, fmt.Errorf("voucher %s has reached its usage limit", v.Code)
	}

	discount := v.Value
	if v.Type == TypePercent {
		discount = subtotal * v.Value / 100
	}
	if discount > subtotal {
		discount = subtotal
	}

	if err := s.repo.IncrementUsage(ctx, v.ID.String()); err != nil {
		return 0, err
	}
	return discount, nil
}
