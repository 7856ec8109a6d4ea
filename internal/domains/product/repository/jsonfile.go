package repository

import (
	"context"
	"sort"

	"jewelry-backend/internal/domains/product"
	"jewelry-backend/internal/infrastructure/jsonstore"

	"github.com/google/uuid"
)

type jsonFileRepository struct {
	collection *jsonstore.Collection[product.Product]
}

// NewJSONFileRepository builds the flat-file product repository on top of
// <dataDir>/products.json.
func NewJSONFileRepository(dataDir string) (product.ProductRepository, error) {
	collection, err := jsonstore.NewCollection[product.Product](dataDir, "products")
	if err != nil {
		return nil, err
	}
	return &jsonFileRepository{collection: collection}, nil
}

func (r *jsonFileRepository) Create(ctx context.Context, entity *product.Product) error {
	return r.collection.Mutate(func(items []product.Product) ([]product.Product, error) {
		return append(items, *entity), nil
	})
}

func (r *jsonFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	items, err := r.collection.All()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			entity := items[i]
			entity.Normalize()
			return &entity, nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (r *jsonFileRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	return r.filter(func(*product.Product) bool { return true })
}

func (r *jsonFileRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*product.Product, error) {
	return r.filter(func(p *product.Product) bool { return p.CategoryID == categoryID })
}

func (r *jsonFileRepository) filter(keep func(*product.Product) bool) ([]*product.Product, error) {
	items, err := r.collection.All()
	if err != nil {
		return nil, err
	}

	entities := make([]*product.Product, 0, len(items))
	for i := range items {
		entity := items[i]
		if !keep(&entity) {
			continue
		}
		entity.Normalize()
		entities = append(entities, &entity)
	}

	// Newest first, matching the database backend.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].CreatedAt.After(entities[j].CreatedAt)
	})

	return entities, nil
}

func (r *jsonFileRepository) Update(ctx context.Context, entity *product.Product) error {
	return r.collection.Mutate(func(items []product.Product) ([]product.Product, error) {
		for i := range items {
			if items[i].ID == entity.ID {
				items[i] = *entity
				return items, nil
			}
		}
		return nil, product.ErrProductNotFound
	})
}

func (r *jsonFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.collection.Mutate(func(items []product.Product) ([]product.Product, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, product.ErrProductNotFound
	})
}
