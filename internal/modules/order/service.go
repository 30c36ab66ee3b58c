package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Vileyy/admin-halora-sub001/internal/modules/catalog"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/inventory"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/voucher"
)

// Service defines order management business logic.
type Service interface {
	// PlaceOrder validates the cart, prices the lines from the catalog,
	// applies an optional voucher, persists the order atomically, then
	// decrements inventory stock per line.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// CancelOrder cancels a PENDING or CONFIRMED order and restores the
	// stock its lines had decremented.
	CancelOrder(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	catalog   catalog.Repository
	inventory inventory.Repository
	vouchers  voucher.Service
}

// NewService creates a new order service. vouchers may be nil when voucher
// redemption is disabled.
func NewService(repo Repository, catalogRepo catalog.Repository, inventoryRepo inventory.Repository, vouchers voucher.Service) Service {
	return &service{repo: repo, catalog: catalogRepo, inventory: inventoryRepo, vouchers: vouchers}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, fmt.Errorf("customer_name and customer_phone are required")
	}

	o := &Order{
		ID:              uuid.New(),
		OrderNumber:     newOrderNumber(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          StatusPending,
		Notes:           req.Notes,
	}

	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: quantity must be greater than 0", i)
		}
		p, err := s.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: product %s: %w", i, line.ProductID, err)
		}
		v := findVariant(p, line.VariantID)
		if v == nil {
			return nil, fmt.Errorf("items[%d]: variant %s not found on product %s", i, line.VariantID, line.ProductID)
		}
		item := &OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   p.ID,
			VariantID:   v.ID,
			VariantName: v.Name,
			Quantity:    line.Quantity,
			UnitPrice:   v.Price,
			LineTotal:   v.Price * float64(line.Quantity),
		}
		o.Items = append(o.Items, item)
		o.Subtotal += item.LineTotal
	}

	if req.VoucherCode != "" {
		if s.vouchers == nil {
			return nil, fmt.Errorf("voucher redemption is not available")
		}
		discount, err := s.vouchers.Redeem(ctx, req.VoucherCode, o.Subtotal)
		if err != nil {
			return nil, err
		}
		o.Discount = discount
		o.VoucherCode = req.VoucherCode
	}
	o.Total = o.Subtotal - o.Discount
	if o.Total < 0 {
		o.Total = 0
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	// Stock comes off the inventory projection, not the catalog: this is
	// the independent write path that makes catalog and inventory drift
	// apart until the next reconciliation. A line without an inventory
	// record just logs; the order itself already committed.
	for _, item := range o.Items {
		err := s.inventory.AdjustStock(ctx, item.ProductID.String(), item.VariantID.String(), -item.Quantity)
		if err != nil {
			log.Warn().Err(err).
				Str("order", o.OrderNumber).
				Str("product_id", item.ProductID.String()).
				Str("variant_id", item.VariantID.String()).
				Msg("order: stock decrement failed")
		}
	}

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.ListOrders(ctx, status)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, req.Status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", o.Status, req.Status)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	o.Status = req.Status
	return o, nil
}

// CancelOrder restores every line's quantity without checking whether its
// decrement applied at placement; a line whose decrement had failed comes
// back inflated. The surplus shows up in the next catalog comparison and the
// next sync overwrites it, so the window is bounded by the reconciliation
// cadence.
func (s *service) CancelOrder(ctx context.Context, id string) error {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return fmt.Errorf("cannot cancel an order in status %s", o.Status)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}
	for _, item := range o.Items {
		err := s.inventory.AdjustStock(ctx, item.ProductID.String(), item.VariantID.String(), item.Quantity)
		if err != nil {
			log.Warn().Err(err).
				Str("order", o.OrderNumber).
				Str("variant_id", item.VariantID.String()).
				Msg("order: stock restore failed")
		}
	}
	return nil
}

func findVariant(p *catalog.Product, variantID string) *catalog.Variant {
	for _, v := range p.Variants {
		if v.ID.String() == variantID {
			return v
		}
	}
	return nil
}

func newOrderNumber() string {
	return fmt.Sprintf("HL-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}
