package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Vileyy/admin-halora-sub001/internal/modules/catalog"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/inventory"
)

// Service reconciles the inventory collection against the catalog.
//
// The catalog owns variant stock and pricing; inventory is a materialized
// projection of those fields that order fulfillment mutates independently.
// SyncProductsToInventory repairs drift in one direction (catalog wins);
// CompareInventoryWithProducts reports drift without touching anything.
type Service interface {
	// SyncProductsToInventory overwrites the inventory record of every
	// catalog variant with the catalog's current values. The returned error
	// is non-nil only when the catalog fetch itself fails; individual write
	// failures are collected in the result and never abort the run.
	// Inventory records whose variants left the catalog are not deleted.
	SyncProductsToInventory(ctx context.Context) (*Result, error)

	// CompareInventoryWithProducts reports stock-quantity discrepancies
	// between catalog and inventory. Read-only, safe at any frequency.
	CompareInventoryWithProducts(ctx context.Context) (*CompareResult, error)

	// ListRuns returns recent reconciliation runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}

type service struct {
	catalog   catalog.Repository
	inventory inventory.Repository
	runs      RunRepository
	now       func() time.Time
}

// NewService creates a new reconciliation service. runs may be nil when run
// history is not wanted (tests).
func NewService(catalogRepo catalog.Repository, inventoryRepo inventory.Repository, runs RunRepository) Service {
	return &service{
		catalog:   catalogRepo,
		inventory: inventoryRepo,
		runs:      runs,
		now:       time.Now,
	}
}

func (s *service) SyncProductsToInventory(ctx context.Context) (*Result, error) {
	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	res := &Result{Success: true, Errors: []ItemError{}}
	now := s.now()
	for _, p := range products {
		for _, v := range p.Variants {
			item := &inventory.Item{
				ProductID:   p.ID,
				VariantID:   v.ID,
				VariantName: v.Name,
				StockQty:    v.StockQty,
				Price:       v.Price,
				ImportPrice: v.ImportPrice,
				Supplier:    p.Supplier,
				BrandID:     p.BrandID,
				UpdatedAt:   now,
			}
			if err := s.inventory.Upsert(ctx, item); err != nil {
				res.Errors = append(res.Errors, ItemError{
					ProductID: p.ID.String(),
					VariantID: v.ID.String(),
					Error:     err.Error(),
				})
				continue
			}
			res.SyncedCount++
		}
	}

	if s.runs != nil {
		run := &Run{ID: uuid.New(), SyncedCount: res.SyncedCount, ErrorCount: len(res.Errors), RanAt: now}
		if err := s.runs.CreateRun(ctx, run); err != nil {
			// history is best-effort; the sync itself already happened
			log.Warn().Err(err).Msg("sync: recording run failed")
		}
	}

	log.Info().Int("synced", res.SyncedCount).Int("errors", len(res.Errors)).Msg("sync: catalog reconciled into inventory")
	return res, nil
}

// CompareInventoryWithProducts compares stock quantity only. Price and
// import price are deliberately left out: the dashboard surfaces this report
// as a stock check, and pricing drift is repaired by the next sync anyway.
func (s *service) CompareInventoryWithProducts(ctx context.Context) (*CompareResult, error) {
	products, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	items, err := s.inventory.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	type key struct{ productID, variantID uuid.UUID }
	byKey := make(map[key]*inventory.Item, len(items))
	for _, item := range items {
		byKey[key{item.ProductID, item.VariantID}] = item
	}

	res := &CompareResult{Differences: []Difference{}}
	seen := make(map[key]bool, len(items))
	for _, p := range products {
		for _, v := range p.Variants {
			k := key{p.ID, v.ID}
			seen[k] = true
			item, ok := byKey[k]
			if !ok {
				res.Differences = append(res.Differences, Difference{
					ProductID:      p.ID.String(),
					VariantID:      v.ID.String(),
					VariantName:    v.Name,
					Kind:           DiffMissingInventory,
					CatalogValue:   v.StockQty,
					InventoryValue: 0,
				})
				continue
			}
			if item.StockQty != v.StockQty {
				res.Differences = append(res.Differences, Difference{
					ProductID:      p.ID.String(),
					VariantID:      v.ID.String(),
					VariantName:    v.Name,
					Kind:           DiffStockMismatch,
					CatalogValue:   v.StockQty,
					InventoryValue: item.StockQty,
				})
			}
		}
	}

	// inventory records whose catalog counterpart is gone: reported in
	// inventory order, after the catalog-driven differences
	for _, item := range items {
		if seen[key{item.ProductID, item.VariantID}] {
			continue
		}
		res.Differences = append(res.Differences, Difference{
			ProductID:      item.ProductID.String(),
			VariantID:      item.VariantID.String(),
			VariantName:    item.VariantName,
			Kind:           DiffOrphanInventory,
			CatalogValue:   0,
			InventoryValue: item.StockQty,
		})
	}

	res.TotalDifferences = len(res.Differences)
	return res, nil
}

func (s *service) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.runs == nil {
		return []*Run{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}
