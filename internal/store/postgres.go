package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sitegen_server/internal/types"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS site_configs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		config     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`

// PostgresStore keeps configurations in the site_configs table.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore connects and makes sure the table exists.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, createTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create site_configs table: %w", err)
	}
	return &PostgresStore{Pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, id string, cfg *types.SiteConfiguration) error {
	if err := checkSave(id, cfg); err != nil {
		return err
	}
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		INSERT INTO site_configs (id, name, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, config = EXCLUDED.config, updated_at = EXCLUDED.updated_at`,
		id, cfg.Name, doc, now)
	if err != nil {
		return fmt.Errorf("failed to save configuration %s: %w", id, err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*types.SiteConfiguration, error) {
	var doc []byte
	err := s.Pool.QueryRow(ctx, `SELECT config FROM site_configs WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration %s: %w", id, err)
	}
	var cfg types.SiteConfiguration
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", id, err)
	}
	return &cfg, nil
}

func (s *PostgresStore) Close() {
	s.Pool.Close()
}
