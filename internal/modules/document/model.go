package document

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies what a stored file is used for in the dashboard.
type Kind string

const (
	KindBanner       Kind = "BANNER"
	KindProductImage Kind = "PRODUCT_IMAGE"
	KindReport       Kind = "REPORT"
	KindOther        Kind = "OTHER"
)

// Document is the metadata record of a file hosted with a storage provider.
// The bytes live with the provider; the dashboard only tracks the reference.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	URL         string    `json:"url"`
	MimeType    string    `json:"mime_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	Provider    string    `json:"provider"`
	ProviderRef string    `json:"provider_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
