package product

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository is the data-access contract. Implementations apply
// Normalize to every product they return, so callers always see the
// multi-image sequence shape regardless of which schema generation wrote
// the document.
type ProductRepository interface {
	Create(ctx context.Context, entity *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, entity *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
