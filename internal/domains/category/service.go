package category

import (
	"context"

	"github.com/google/uuid"
)

// CategoryService is the business-logic contract consumed by the handler.
type CategoryService interface {
	Create(ctx context.Context, req *CreateCategoryReq) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryReq) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
