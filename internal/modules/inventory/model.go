package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Item is the materialized inventory record for one catalog variant, keyed
// by (ProductID, VariantID). The sync engine creates and overwrites these
// from the catalog; order fulfillment mutates StockQty independently.
type Item struct {
	ProductID   uuid.UUID  `json:"product_id"`
	VariantID   uuid.UUID  `json:"variant_id"`
	VariantName string     `json:"variant_name"`
	StockQty    int        `json:"stock_qty"`
	Price       float64    `json:"price"`
	ImportPrice float64    `json:"import_price"`
	Supplier    string     `json:"supplier,omitempty"`
	BrandID     *uuid.UUID `json:"brand_id,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UnknownProductName is substituted when an inventory record's product no
// longer exists in the catalog.
const UnknownProductName = "Unknown Product"

// EnrichedItem decorates an Item with display fields joined in from a
// catalog snapshot at read time. The display fields are never persisted.
type EnrichedItem struct {
	Item
	ProductName     string `json:"product_name"`
	ProductImage    string `json:"product_image"`
	ProductCategory string `json:"product_category"`
}
