package repository

import (
	"context"
	"fmt"

	"jewelry-backend/internal/domains/message"
	"jewelry-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds the Postgres-backed message repository.
// The inbox is small and admin-only, so it is not cached.
func NewPostgresRepository(pool *pgxpool.Pool) message.MessageRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entity *message.Message) error {
	const query = `
		INSERT INTO messages (id, doc, created_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, entity.ID, entity, entity.CreatedAt); err != nil {
		logger.Error("Create: database error", err)
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*message.Message, error) {
	const query = `SELECT doc FROM messages ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("GetAll: database error", err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	entities := make([]*message.Message, 0)
	for rows.Next() {
		entity := &message.Message{}
		if err := rows.Scan(entity); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return entities, nil
}
