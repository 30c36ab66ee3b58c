package brand

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines brand business logic.
type Service interface {
	CreateBrand(ctx context.Context, req BrandRequest) (*Brand, error)
	GetBrand(ctx context.Context, id string) (*Brand, error)
	ListBrands(ctx context.Context, activeOnly bool) ([]*Brand, error)
	UpdateBrand(ctx context.Context, id string, req BrandRequest) (*Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

// BrandRequest holds the data for creating or updating a brand.
type BrandRequest struct {
	Name        string `json:"name"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type service struct{ repo Repository }

// NewService creates a new brand service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateBrand(ctx context.Context, req BrandRequest) (*Brand, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	b := &Brand{
		ID:          uuid.New(),
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		Description: req.Description,
		IsActive:    active,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBrand(ctx context.Context, id string) (*Brand, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBrands(ctx context.Context, activeOnly bool) ([]*Brand, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) UpdateBrand(ctx context.Context, id string, req BrandRequest) (*Brand, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = req.Name
	b.LogoURL = req.LogoURL
	b.Description = req.Description
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteBrand(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
