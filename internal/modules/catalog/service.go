package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// VariantInput holds the data for one variant inside a product request.
type VariantInput struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImportPrice float64 `json:"import_price"`
	StockQty    int     `json:"stock_qty"`
}

// ProductRequest holds the data for creating or updating a product.
type ProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Supplier    string         `json:"supplier"`
	BrandID     string         `json:"brand_id,omitempty"`
	Media       []Media        `json:"media"`
	Variants    []VariantInput `json:"variants"`
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) validate(req ProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Category == "" {
		return fmt.Errorf("category is required")
	}
	// admin UI requires a small gallery per product
	if len(req.Media) < 2 || len(req.Media) > 5 {
		return fmt.Errorf("product requires between 2 and 5 media items, got %d", len(req.Media))
	}
	for i, m := range req.Media {
		if m.URL == "" {
			return fmt.Errorf("media[%d]: url is required", i)
		}
		if m.Kind != MediaImage && m.Kind != MediaVideo {
			return fmt.Errorf("media[%d]: kind must be image or video", i)
		}
	}
	for i, v := range req.Variants {
		if v.Name == "" {
			return fmt.Errorf("variants[%d]: name is required", i)
		}
		if v.Price < 0 || v.ImportPrice < 0 {
			return fmt.Errorf("variants[%d]: price must not be negative", i)
		}
		if v.StockQty < 0 {
			return fmt.Errorf("variants[%d]: stock_qty must not be negative", i)
		}
	}
	return nil
}

func (s *service) buildVariants(productID uuid.UUID, inputs []VariantInput) ([]*Variant, error) {
	variants := make([]*Variant, 0, len(inputs))
	for i, in := range inputs {
		id := uuid.New()
		if in.ID != "" {
			parsed, err := uuid.Parse(in.ID)
			if err != nil {
				return nil, fmt.Errorf("variants[%d]: invalid id: %w", i, err)
			}
			id = parsed
		}
		variants = append(variants, &Variant{
			ID:          id,
			ProductID:   productID,
			Name:        in.Name,
			Price:       in.Price,
			ImportPrice: in.ImportPrice,
			StockQty:    in.StockQty,
		})
	}
	return variants, nil
}

func parseBrandID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid brand_id: %w", err)
	}
	return &id, nil
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	brandID, err := parseBrandID(req.BrandID)
	if err != nil {
		return nil, err
	}
	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Supplier:    req.Supplier,
		BrandID:     brandID,
		Media:       req.Media,
	}
	p.Variants, err = s.buildVariants(p.ID, req.Variants)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.List(ctx, category)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	brandID, err := parseBrandID(req.BrandID)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Category = req.Category
	p.Supplier = req.Supplier
	p.BrandID = brandID
	p.Media = req.Media
	p.Variants, err = s.buildVariants(p.ID, req.Variants)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
