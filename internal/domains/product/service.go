package product

import (
	"context"

	"github.com/google/uuid"
)

// ProductService is the business-logic contract consumed by the handler.
// Create and Update run the full upload pipeline for the supplied files:
// transform, publish, persist, and compensating deletes when a later
// step fails.
type ProductService interface {
	Create(ctx context.Context, req *CreateProductReq, files []UploadedFile) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductReq, files []UploadedFile) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
