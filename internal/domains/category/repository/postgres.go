package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry-backend/internal/domains/category"
	"jewelry-backend/pkg/cache"
	"jewelry-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	cacheKeyAllCategories = "categories:all"
	categoryCacheTTL      = 5 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the Postgres-backed category repository.
// cache may be nil when Redis is disabled.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.CategoryRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) error {
	const query = `
		INSERT INTO categories (id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, entity.ID, entity, entity.CreatedAt, entity.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_categories_name" {
			return category.ErrDuplicateName
		}
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	const query = `SELECT doc FROM categories WHERE id = $1`

	entity := &category.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(entity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*category.Category, error) {
	if r.cache != nil {
		var cached []*category.Category
		if found, err := r.cache.Get(ctx, cacheKeyAllCategories, &cached); err == nil && found {
			return cached, nil
		}
	}

	const query = `SELECT doc FROM categories ORDER BY doc->>'name'`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("GetAll: database error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	entities := make([]*category.Category, 0)
	for rows.Next() {
		entity := &category.Category{}
		if err := rows.Scan(entity); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKeyAllCategories, entities, categoryCacheTTL); err != nil {
			logger.Warn("GetAll: cache set failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return entities, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *category.Category) error {
	const query = `
		UPDATE categories
		SET doc = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, entity.ID, entity, entity.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "idx_categories_name" {
			return category.ErrDuplicateName
		}
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM categories WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE lower(doc->>'name') = lower($1) AND id <> $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		logger.Error("ExistsByName: database error", err)
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, cacheKeyAllCategories); err != nil {
		logger.Warn("cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
