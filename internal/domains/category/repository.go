package category

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository is the data-access contract. Two backends implement
// it: a Postgres document collection and a flat JSON file.
type CategoryRepository interface {
	Create(ctx context.Context, entity *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, entity *Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByName reports whether another category already uses this
	// name (case-insensitive). excludeID is skipped, so updates do not
	// collide with themselves.
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
}
