package service

import (
	"context"
	"strings"
	"time"

	"jewelry-backend/internal/domains/category"

	"github.com/google/uuid"
)

type categoryService struct {
	repo category.CategoryRepository
}

// NewCategoryService builds the category business-logic layer.
func NewCategoryService(repo category.CategoryRepository) category.CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, category.ErrInvalidName
	}

	exists, err := s.repo.ExistsByName(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, category.ErrDuplicateName
	}

	now := time.Now().UTC()
	entity := &category.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetAll(ctx context.Context) ([]*category.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *category.UpdateCategoryReq) (*category.Category, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, category.ErrInvalidName
		}

		exists, err := s.repo.ExistsByName(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, category.ErrDuplicateName
		}
		entity.Name = name
	}
	if req.Description != nil {
		entity.Description = strings.TrimSpace(*req.Description)
	}

	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete removes the category only. Products referencing the deleted
// category keep their stale name and keep rendering; the storefront
// treats the reference as plain text.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
