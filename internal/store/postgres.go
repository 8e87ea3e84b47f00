package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresBackend stores slots in the cart_slots table created by the database migrations.
type postgresBackend struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresBackend creates a PostgreSQL-backed slot store. The pool is owned
// by the caller and is not closed by Close.
func NewPostgresBackend(pool *pgxpool.Pool, logger zerolog.Logger) Backend {
	return &postgresBackend{
		pool:   pool,
		logger: logger.With().Str("backend", "postgres").Logger(),
	}
}

func (b *postgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM cart_slots
		WHERE key = $1
	`

	var value []byte
	err := b.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		b.logger.Error().Err(err).Str("key", key).Msg("failed to query cart slot")
		return nil, fmt.Errorf("failed to query cart slot: %w", err)
	}

	return value, nil
}

func (b *postgresBackend) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO cart_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := b.pool.Exec(ctx, query, key, value); err != nil {
		b.logger.Error().Err(err).Str("key", key).Msg("failed to write cart slot")
		return fmt.Errorf("failed to write cart slot: %w", err)
	}

	return nil
}

func (b *postgresBackend) Close() error {
	return nil
}
