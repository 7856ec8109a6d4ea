package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry-backend/internal/domains/product"
	"jewelry-backend/pkg/cache"
	"jewelry-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productCacheTTL = 5 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the Postgres-backed product repository.
// cache may be nil when Redis is disabled.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) product.ProductRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func productCacheKey(id uuid.UUID) string {
	return "products:id:" + id.String()
}

func (r *postgresRepository) Create(ctx context.Context, entity *product.Product) error {
	const query = `
		INSERT INTO products (id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, entity.ID, entity, entity.CreatedAt, entity.UpdatedAt); err != nil {
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	if r.cache != nil {
		cached := &product.Product{}
		if found, err := r.cache.Get(ctx, productCacheKey(id), cached); err == nil && found {
			cached.Normalize()
			return cached, nil
		}
	}

	const query = `SELECT doc FROM products WHERE id = $1`

	entity := &product.Product{}
	err := r.pool.QueryRow(ctx, query, id).Scan(entity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	entity.Normalize()

	if r.cache != nil {
		if err := r.cache.Set(ctx, productCacheKey(id), entity, productCacheTTL); err != nil {
			logger.Warn("GetByID: cache set failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return entity, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	const query = `SELECT doc FROM products ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *postgresRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID) ([]*product.Product, error) {
	const query = `
		SELECT doc FROM products
		WHERE doc->>'categoryId' = $1
		ORDER BY created_at DESC
	`
	return r.queryMany(ctx, query, categoryID.String())
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*product.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("query: database error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	entities := make([]*product.Product, 0)
	for rows.Next() {
		entity := &product.Product{}
		if err := rows.Scan(entity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		entity.Normalize()
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return entities, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *product.Product) error {
	const query = `
		UPDATE products
		SET doc = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, entity.ID, entity, entity.UpdatedAt)
	if err != nil {
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}

	r.invalidate(ctx, entity.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, productCacheKey(id)); err != nil {
		logger.Warn("cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
