package repository

import (
	"context"
	"testing"
	"time"

	"jewelry-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntity(name string) *category.Category {
	now := time.Now().UTC()
	return &category.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestJSONFileRepositoryRoundtrip(t *testing.T) {
	repo, err := NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)

	entity := newEntity("Rings")
	require.NoError(t, repo.Create(context.Background(), entity))

	fetched, err := repo.GetByID(context.Background(), entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rings", fetched.Name)

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestJSONFileRepositoryDuplicateName(t *testing.T) {
	repo, err := NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), newEntity("Rings")))

	err = repo.Create(context.Background(), newEntity("rings"))
	assert.ErrorIs(t, err, category.ErrDuplicateName)
}

func TestJSONFileRepositoryUpdateAndDelete(t *testing.T) {
	repo, err := NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)

	entity := newEntity("Necklaces")
	require.NoError(t, repo.Create(context.Background(), entity))

	entity.Description = "Elegant necklaces and chains"
	entity.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(context.Background(), entity))

	fetched, err := repo.GetByID(context.Background(), entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elegant necklaces and chains", fetched.Description)

	require.NoError(t, repo.Delete(context.Background(), entity.ID))

	_, err = repo.GetByID(context.Background(), entity.ID)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	err = repo.Delete(context.Background(), entity.ID)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestJSONFileRepositoryExistsByName(t *testing.T) {
	repo, err := NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)

	entity := newEntity("Bracelets")
	require.NoError(t, repo.Create(context.Background(), entity))

	exists, err := repo.ExistsByName(context.Background(), "BRACELETS", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// A category never collides with its own name.
	exists, err = repo.ExistsByName(context.Background(), "Bracelets", entity.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestJSONFileRepositorySurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	repo, err := NewJSONFileRepository(dir)
	require.NoError(t, err)

	entity := newEntity("Pendants")
	require.NoError(t, repo.Create(context.Background(), entity))

	reopened, err := NewJSONFileRepository(dir)
	require.NoError(t, err)

	fetched, err := reopened.GetByID(context.Background(), entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pendants", fetched.Name)
}
