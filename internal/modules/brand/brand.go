package brand

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a cosmetics brand products can reference.
type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
