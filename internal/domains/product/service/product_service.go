package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jewelry-backend/internal/domains/category"
	"jewelry-backend/internal/domains/product"
	"jewelry-backend/internal/infrastructure/storage"
	"jewelry-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const assetFolder = "products"

type productService struct {
	repo         product.ProductRepository
	categories   category.CategoryRepository
	processor    *storage.ImageProcessor
	publisher    storage.AssetPublisher
	maxFileCount int
}

// NewProductService wires the upload pipeline: transform, publish,
// persist, and compensating deletes when a later step fails.
func NewProductService(
	repo product.ProductRepository,
	categories category.CategoryRepository,
	processor *storage.ImageProcessor,
	publisher storage.AssetPublisher,
	maxFileCount int,
) product.ProductService {
	return &productService{
		repo:         repo,
		categories:   categories,
		processor:    processor,
		publisher:    publisher,
		maxFileCount: maxFileCount,
	}
}

func (s *productService) Create(ctx context.Context, req *product.CreateProductReq, files []product.UploadedFile) (*product.Product, error) {
	if len(files) > s.maxFileCount {
		return nil, product.ErrTooManyImages
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(strings.TrimSpace(req.Category))
	if err != nil {
		return nil, product.ErrCategoryNotFound
	}
	cat, err := s.resolveCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	assets, err := s.publishAll(ctx, files)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &product.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Price:       price,
		Description: strings.TrimSpace(req.Description),
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyAssets(entity, assets)
	entity.SyncLegacy()

	if err := s.repo.Create(ctx, entity); err != nil {
		s.compensate(ctx, assets)
		return nil, err
	}

	entity.Normalize()
	entity.Category = cat
	return entity, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.denormalize(ctx, entity)
	return entity, nil
}

func (s *productService) GetAll(ctx context.Context) ([]*product.Product, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.denormalizeAll(ctx, entities)
	return entities, nil
}

func (s *productService) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*product.Product, error) {
	entities, err := s.repo.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.denormalizeAll(ctx, entities)
	return entities, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *product.UpdateProductReq, files []product.UploadedFile) (*product.Product, error) {
	if len(files) > s.maxFileCount {
		return nil, product.ErrTooManyImages
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.Category = nil

	if req.Name != nil {
		entity.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		entity.Price = price
	}
	if req.Description != nil {
		entity.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		categoryID, err := uuid.Parse(strings.TrimSpace(*req.Category))
		if err != nil {
			return nil, product.ErrCategoryNotFound
		}
		if _, err := s.resolveCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		entity.CategoryID = categoryID
	}

	// Zero files means "no image change"; uploaded files replace the
	// existing images wholesale.
	var oldHandles []string
	assets, err := s.publishAll(ctx, files)
	if err != nil {
		return nil, err
	}
	if len(assets) > 0 {
		oldHandles = append(oldHandles, entity.ImageFileIDs...)
		applyAssets(entity, assets)
	}
	entity.SyncLegacy()
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, entity); err != nil {
		s.compensate(ctx, assets)
		return nil, err
	}

	// The replaced assets come down only after the new record is durably
	// saved, so a failed write never strands the product without images.
	s.unpublishHandles(ctx, oldHandles)

	entity.Normalize()
	s.denormalize(ctx, entity)
	return entity, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Asset cleanup is best effort; the record is already gone.
	s.unpublishHandles(ctx, entity.ImageFileIDs)
	return nil
}

// publishAll runs the per-file pipeline sequentially: transform, then
// publish. On any failure the assets already published in this request
// are unpublished before the error is returned, so a partial batch never
// leaks orphans.
func (s *productService) publishAll(ctx context.Context, files []product.UploadedFile) ([]*storage.Asset, error) {
	published := make([]*storage.Asset, 0, len(files))

	for _, file := range files {
		optimized, err := s.processor.Optimize(file.Data, file.ContentType)
		if err != nil {
			s.compensate(ctx, published)
			return nil, err
		}

		asset, err := s.publisher.Publish(ctx, optimized, file.Filename, assetFolder)
		if err != nil {
			s.compensate(ctx, published)
			return nil, fmt.Errorf("%w: %s: %v", product.ErrAssetPublish, file.Filename, err)
		}
		published = append(published, asset)
	}

	return published, nil
}

// compensate unpublishes every asset published during the current
// request. Assets from prior requests are never touched here.
func (s *productService) compensate(ctx context.Context, assets []*storage.Asset) {
	for _, asset := range assets {
		if err := s.publisher.Unpublish(ctx, asset.DeletionHandle); err != nil {
			logger.Error("compensation failed, asset may be orphaned", err)
		}
	}
}

// unpublishHandles removes previously stored assets, one by one. Every
// failure is logged independently and none aborts the caller.
func (s *productService) unpublishHandles(ctx context.Context, handles []string) {
	for _, handle := range handles {
		if handle == "" {
			logger.Warn("no deletion handle recorded, skipping asset cleanup", nil)
			continue
		}
		if err := s.publisher.Unpublish(ctx, handle); err != nil {
			logger.Error("failed to unpublish asset", err)
		}
	}
}

func (s *productService) resolveCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, product.ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

// denormalize joins the category onto the product. A dangling reference
// (category deleted after the product was written) leaves Category nil.
func (s *productService) denormalize(ctx context.Context, entity *product.Product) {
	cat, err := s.categories.GetByID(ctx, entity.CategoryID)
	if err != nil {
		return
	}
	entity.Category = cat
}

func (s *productService) denormalizeAll(ctx context.Context, entities []*product.Product) {
	cache := make(map[uuid.UUID]*category.Category)
	for _, entity := range entities {
		if cat, ok := cache[entity.CategoryID]; ok {
			entity.Category = cat
			continue
		}
		cat, err := s.categories.GetByID(ctx, entity.CategoryID)
		if err != nil {
			continue
		}
		cache[entity.CategoryID] = cat
		entity.Category = cat
	}
}

func applyAssets(entity *product.Product, assets []*storage.Asset) {
	images := make([]string, 0, len(assets))
	handles := make([]string, 0, len(assets))
	metadata := make([]product.ImageMetadata, 0, len(assets))

	for _, asset := range assets {
		images = append(images, asset.URL)
		handles = append(handles, asset.DeletionHandle)
		metadata = append(metadata, product.ImageMetadata{
			URL:          asset.URL,
			ThumbnailURL: asset.ThumbnailURL,
			Width:        asset.Width,
			Height:       asset.Height,
			Size:         asset.Size,
		})
	}

	entity.Images = images
	entity.ImageFileIDs = handles
	entity.ImageMetadataList = metadata
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, product.ErrInvalidPrice
	}
	if price.IsNegative() {
		return decimal.Zero, product.ErrInvalidPrice
	}
	return price, nil
}
