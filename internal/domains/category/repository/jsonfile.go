package repository

import (
	"context"
	"strings"

	"jewelry-backend/internal/domains/category"
	"jewelry-backend/internal/infrastructure/jsonstore"

	"github.com/google/uuid"
)

type jsonFileRepository struct {
	collection *jsonstore.Collection[category.Category]
}

// NewJSONFileRepository builds the flat-file category repository on top of
// <dataDir>/categories.json.
func NewJSONFileRepository(dataDir string) (category.CategoryRepository, error) {
	collection, err := jsonstore.NewCollection[category.Category](dataDir, "categories")
	if err != nil {
		return nil, err
	}
	return &jsonFileRepository{collection: collection}, nil
}

func (r *jsonFileRepository) Create(ctx context.Context, entity *category.Category) error {
	return r.collection.Mutate(func(items []category.Category) ([]category.Category, error) {
		for _, item := range items {
			if strings.EqualFold(item.Name, entity.Name) {
				return nil, category.ErrDuplicateName
			}
		}
		return append(items, *entity), nil
	})
}

func (r *jsonFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	items, err := r.collection.All()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (r *jsonFileRepository) GetAll(ctx context.Context) ([]*category.Category, error) {
	items, err := r.collection.All()
	if err != nil {
		return nil, err
	}
	entities := make([]*category.Category, 0, len(items))
	for i := range items {
		entities = append(entities, &items[i])
	}
	return entities, nil
}

func (r *jsonFileRepository) Update(ctx context.Context, entity *category.Category) error {
	return r.collection.Mutate(func(items []category.Category) ([]category.Category, error) {
		for i := range items {
			if items[i].ID == entity.ID {
				continue
			}
			if strings.EqualFold(items[i].Name, entity.Name) {
				return nil, category.ErrDuplicateName
			}
		}
		for i := range items {
			if items[i].ID == entity.ID {
				items[i] = *entity
				return items, nil
			}
		}
		return nil, category.ErrCategoryNotFound
	})
}

func (r *jsonFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.collection.Mutate(func(items []category.Category) ([]category.Category, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, category.ErrCategoryNotFound
	})
}

func (r *jsonFileRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	items, err := r.collection.All()
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.ID != excludeID && strings.EqualFold(item.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
