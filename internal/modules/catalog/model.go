package catalog

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind distinguishes the entries in a product's media gallery.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is a single hosted image or video reference in a product gallery.
// The gallery is ordered by Position.
type Media struct {
	URL      string    `json:"url"`
	Kind     MediaKind `json:"kind"`
	Position int       `json:"position"`
}

// Product is an entry in the master catalog. The catalog is the source of
// truth for variant stock and pricing; the inventory module holds a derived
// projection of those fields (see the sync module).
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Supplier    string     `json:"supplier,omitempty"`
	BrandID     *uuid.UUID `json:"brand_id,omitempty"`
	Media       []Media    `json:"media,omitempty"`
	Variants    []*Variant `json:"variants,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Variant is a sellable variation of a product (size, shade, bundle).
// Its (ProductID, ID) pair is the natural key used to correlate it with
// the inventory collection.
type Variant struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ImportPrice float64   `json:"import_price"`
	StockQty    int       `json:"stock_qty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FirstImage returns the URL of the first image in the gallery, or "" when
// the product has no image media.
func (p *Product) FirstImage() string {
	for _, m := range p.Media {
		if m.Kind == MediaImage {
			return m.URL
		}
	}
	return ""
}
