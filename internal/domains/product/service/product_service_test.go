package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jewelry-backend/internal/domains/category"
	"jewelry-backend/internal/domains/product"
	"jewelry-backend/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCategoryRepo is the minimal in-memory CategoryRepository the
// product service needs for category validation and denormalization.
type stubCategoryRepo struct {
	items map[uuid.UUID]*category.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{items: make(map[uuid.UUID]*category.Category)}
}

func (r *stubCategoryRepo) Create(ctx context.Context, entity *category.Category) error {
	clone := *entity
	r.items[entity.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	entity, ok := r.items[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	clone := *entity
	return &clone, nil
}

func (r *stubCategoryRepo) GetAll(ctx context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(r.items))
	for _, entity := range r.items {
		clone := *entity
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(ctx context.Context, entity *category.Category) error {
	if _, ok := r.items[entity.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	clone := *entity
	r.items[entity.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubCategoryRepo) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return false, nil
}

// stubProductRepo is an in-memory ProductRepository whose write failures
// can be scripted per call.
type stubProductRepo struct {
	items     map[uuid.UUID]*product.Product
	createErr error
	updateErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: make(map[uuid.UUID]*product.Product)}
}

func (r *stubProductRepo) Create(ctx context.Context, entity *product.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *entity
	r.items[entity.ID] = &clone
	return nil
}

func (r *stubProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	entity, ok := r.items[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	clone := *entity
	clone.Normalize()
	return &clone, nil
}

func (r *stubProductRepo) GetAll(ctx context.Context) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(r.items))
	for _, entity := range r.items {
		clone := *entity
		clone.Normalize()
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*product.Product, error) {
	out := make([]*product.Product, 0)
	for _, entity := range r.items {
		if entity.CategoryID != categoryID {
			continue
		}
		clone := *entity
		clone.Normalize()
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(ctx context.Context, entity *product.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.items[entity.ID]; !ok {
		return product.ErrProductNotFound
	}
	clone := *entity
	r.items[entity.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

// stubPublisher records every publish and unpublish. failAfter scripts a
// publish failure once that many assets have gone out.
type stubPublisher struct {
	published   []string
	unpublished []string
	failAfter   int
	counter     int
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{failAfter: -1}
}

func (p *stubPublisher) Publish(ctx context.Context, data []byte, suggestedName, folder string) (*storage.Asset, error) {
	if p.failAfter >= 0 && len(p.published) >= p.failAfter {
		return nil, errors.New("remote host unavailable")
	}
	p.counter++
	handle := fmt.Sprintf("%s/asset-%d", folder, p.counter)
	p.published = append(p.published, handle)
	return &storage.Asset{
		URL:            "https://cdn.example.com/" + handle,
		ThumbnailURL:   "https://cdn.example.com/" + handle + "_thumb",
		DeletionHandle: handle,
		Width:          800,
		Height:         600,
		Size:           int64(len(data)),
	}, nil
}

func (p *stubPublisher) Unpublish(ctx context.Context, handle string) error {
	p.unpublished = append(p.unpublished, handle)
	return nil
}

func fixture(t *testing.T) (*stubProductRepo, *stubCategoryRepo, *stubPublisher, product.ProductService, uuid.UUID) {
	t.Helper()

	repo := newStubProductRepo()
	categories := newStubCategoryRepo()
	publisher := newStubPublisher()

	cat := &category.Category{
		ID:        uuid.New(),
		Name:      "Rings",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, categories.Create(context.Background(), cat))

	svc := NewProductService(repo, categories, storage.NewImageProcessor(), publisher, 5)
	return repo, categories, publisher, svc, cat.ID
}

func files(n int) []product.UploadedFile {
	out := make([]product.UploadedFile, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, product.UploadedFile{
			Filename:    fmt.Sprintf("photo-%d.jpg", i+1),
			ContentType: "image/jpeg",
			Data:        []byte("not-actually-a-jpeg"),
		})
	}
	return out
}

func createReq(categoryID uuid.UUID) *product.CreateProductReq {
	return &product.CreateProductReq{
		Name:        "Gold Ring",
		Price:       "149.99",
		Description: "18k gold band",
		Category:    categoryID.String(),
	}
}

func TestCreateProductWithoutImages(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), nil)
	require.NoError(t, err)

	assert.Equal(t, "Gold Ring", created.Name)
	assert.Equal(t, "149.99", created.Price.String())
	assert.Empty(t, created.Images, "no images supplied means an empty sequence")
	require.NotNil(t, created.Category)
	assert.Equal(t, "Rings", created.Category.Name)
	assert.Empty(t, publisher.published)
	assert.Len(t, repo.items, 1)
}

func TestCreateProductPublishesAndRecordsAssets(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), files(3))
	require.NoError(t, err)

	assert.Len(t, created.Images, 3)
	assert.Len(t, created.ImageFileIDs, 3)
	assert.Len(t, created.ImageMetadataList, 3)
	assert.Len(t, publisher.published, 3)

	// Legacy mirror carries the first image.
	require.NotNil(t, created.Image)
	assert.Equal(t, created.Images[0], *created.Image)
	require.NotNil(t, created.ImageFileID)
	assert.Equal(t, created.ImageFileIDs[0], *created.ImageFileID)

	stored := repo.items[created.ID]
	assert.Equal(t, created.Images, stored.Images)
}

func TestCreateProductRejectsTooManyImages(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)

	_, err := svc.Create(context.Background(), createReq(categoryID), files(6))
	assert.ErrorIs(t, err, product.ErrTooManyImages)

	// Rejected before the pipeline starts: nothing published, nothing stored.
	assert.Empty(t, publisher.published)
	assert.Empty(t, repo.items)
}

func TestCreateProductUnknownCategoryPersistsNothing(t *testing.T) {
	repo, _, publisher, svc, _ := fixture(t)

	req := createReq(uuid.New())
	_, err := svc.Create(context.Background(), req, files(2))
	assert.ErrorIs(t, err, product.ErrCategoryNotFound)

	assert.Empty(t, publisher.published, "category is validated before any publish")
	assert.Empty(t, repo.items)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	_, _, _, svc, categoryID := fixture(t)

	for _, raw := range []string{"", "abc", "-10"} {
		req := createReq(categoryID)
		req.Price = raw
		_, err := svc.Create(context.Background(), req, nil)
		assert.ErrorIs(t, err, product.ErrInvalidPrice, "price %q", raw)
	}
}

func TestCreateProductRejectsNonImageUpload(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)

	bad := []product.UploadedFile{{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	}}

	_, err := svc.Create(context.Background(), createReq(categoryID), bad)
	assert.ErrorIs(t, err, storage.ErrUnsupportedMedia)
	assert.Empty(t, publisher.published)
	assert.Empty(t, repo.items)
}

func TestCreateCompensatesOnPublishFailure(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)
	publisher.failAfter = 2

	_, err := svc.Create(context.Background(), createReq(categoryID), files(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, product.ErrAssetPublish)

	// Images 1-2 went out before image 3 failed; both come back down.
	assert.Equal(t, publisher.published, publisher.unpublished)
	assert.Empty(t, repo.items, "no record persists after compensation")
}

func TestCreateCompensatesOnPersistFailure(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)
	repo.createErr = errors.New("connection reset")

	_, err := svc.Create(context.Background(), createReq(categoryID), files(2))
	require.Error(t, err)

	assert.Len(t, publisher.published, 2)
	assert.Equal(t, publisher.published, publisher.unpublished)
	assert.Empty(t, repo.items)
}

func TestUpdateReplacesImagesOnlyAfterSave(t *testing.T) {
	_, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), files(2))
	require.NoError(t, err)
	oldHandles := append([]string(nil), created.ImageFileIDs...)

	updated, err := svc.Update(context.Background(), created.ID, &product.UpdateProductReq{}, files(1))
	require.NoError(t, err)

	assert.Len(t, updated.Images, 1)
	assert.NotContains(t, oldHandles, updated.ImageFileIDs[0])
	// Both old assets were unpublished after the save.
	assert.ElementsMatch(t, oldHandles, publisher.unpublished)
}

func TestUpdateWriteFailureKeepsOldAssets(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), files(2))
	require.NoError(t, err)
	oldHandles := append([]string(nil), created.ImageFileIDs...)

	repo.updateErr = errors.New("disk full")
	_, err = svc.Update(context.Background(), created.ID, &product.UpdateProductReq{}, files(2))
	require.Error(t, err)

	// The new assets are cleaned up; the old ones are untouched.
	for _, handle := range oldHandles {
		assert.NotContains(t, publisher.unpublished, handle)
	}
	assert.Len(t, publisher.unpublished, 2)

	stored := repo.items[created.ID]
	assert.Equal(t, oldHandles, stored.ImageFileIDs, "record still points at the old assets")
}

func TestUpdateWithoutFilesKeepsImages(t *testing.T) {
	_, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), files(2))
	require.NoError(t, err)

	name := "Platinum Ring"
	updated, err := svc.Update(context.Background(), created.ID, &product.UpdateProductReq{Name: &name}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Platinum Ring", updated.Name)
	assert.Equal(t, created.Images, updated.Images)
	assert.Empty(t, publisher.unpublished)
}

func TestUpdateUnknownCategory(t *testing.T) {
	_, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), nil)
	require.NoError(t, err)

	bogus := uuid.New().String()
	_, err = svc.Update(context.Background(), created.ID, &product.UpdateProductReq{Category: &bogus}, files(1))
	assert.ErrorIs(t, err, product.ErrCategoryNotFound)
	assert.Empty(t, publisher.published, "nothing published when the category cannot resolve")
}

func TestUpdateNotFound(t *testing.T) {
	_, _, _, svc, _ := fixture(t)

	_, err := svc.Update(context.Background(), uuid.New(), &product.UpdateProductReq{}, nil)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestDeleteUnpublishesEveryAsset(t *testing.T) {
	repo, _, publisher, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), files(3))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Empty(t, repo.items)
	assert.ElementsMatch(t, created.ImageFileIDs, publisher.unpublished)

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestReadDenormalizesCategory(t *testing.T) {
	_, _, _, svc, categoryID := fixture(t)

	created, err := svc.Create(context.Background(), createReq(categoryID), nil)
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Rings", fetched.Category.Name)

	listed, err := svc.GetByCategory(context.Background(), categoryID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Category)
}

func TestReadLegacyProductSynthesizesSequence(t *testing.T) {
	repo, _, _, svc, categoryID := fixture(t)

	legacyURL := "https://cdn.example.com/legacy/ring.jpg"
	legacyHandle := "legacy/ring.jpg"
	id := uuid.New()
	repo.items[id] = &product.Product{
		ID:          id,
		Name:        "Heirloom Ring",
		Description: "single-image schema generation",
		CategoryID:  categoryID,
		Image:       &legacyURL,
		ImageFileID: &legacyHandle,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	fetched, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, []string{legacyURL}, fetched.Images)
	assert.Equal(t, []string{legacyHandle}, fetched.ImageFileIDs)
	require.Len(t, fetched.ImageMetadataList, 1)
	assert.Equal(t, legacyURL, fetched.ImageMetadataList[0].URL)
}
