package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the catalog. Names are unique across
// categories (case-insensitive).
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
