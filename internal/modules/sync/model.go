package sync

import (
	"time"

	"github.com/google/uuid"
)

// DiffKind categorizes a reported catalog/inventory difference. Orphaned
// inventory records are a separate category, never conflated with quantity
// mismatches.
type DiffKind string

const (
	DiffStockMismatch    DiffKind = "stock_mismatch"
	DiffMissingInventory DiffKind = "missing_inventory"
	DiffOrphanInventory  DiffKind = "orphan_inventory"
)

// ItemError identifies a single variant whose inventory write failed during
// a sync run. Failures accumulate in encounter order.
type ItemError struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Error     string `json:"error"`
}

// Result reports the outcome of one reconciliation run. Success reflects
// only the catalog fetch; per-variant write failures live in Errors and do
// not abort the run.
type Result struct {
	Success     bool        `json:"success"`
	SyncedCount int         `json:"syncedCount"`
	Errors      []ItemError `json:"errors"`
}

// Difference is one catalog/inventory discrepancy. For missing_inventory
// the inventory value is 0; for orphan_inventory the catalog value is 0.
type Difference struct {
	ProductID      string   `json:"productId"`
	VariantID      string   `json:"variantId"`
	VariantName    string   `json:"variantName"`
	Kind           DiffKind `json:"kind"`
	CatalogValue   int      `json:"catalogValue"`
	InventoryValue int      `json:"inventoryValue"`
}

// CompareResult is the read-only drift report. Differences keep catalog
// iteration order, with orphaned inventory records appended after.
type CompareResult struct {
	Differences      []Difference `json:"differences"`
	TotalDifferences int          `json:"totalDifferences"`
}

// Run is an immutable record of one reconciliation run, kept for the
// dashboard's sync history view.
type Run struct {
	ID          uuid.UUID `json:"id"`
	SyncedCount int       `json:"synced_count"`
	ErrorCount  int       `json:"error_count"`
	RanAt       time.Time `json:"ran_at"`
}
