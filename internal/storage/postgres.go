package storage

import (
	"context"
	"errors"
	"fmt"

	"comparador/client/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	db  *pgxpool.Pool
	key string
}

// NewPostgresStore creates the shopping_lists table if needed.
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool, key string) (ListStore, error) {
	s := &postgresStore{db: db, key: key}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

func (s *postgresStore) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS shopping_lists (
		key        TEXT        PRIMARY KEY,
		data       JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (s *postgresStore) Load(ctx context.Context) (domain.ShoppingList, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM shopping_lists WHERE key = $1`, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ShoppingList{}, nil
		}
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return decodeList(data)
}

func (s *postgresStore) Save(ctx context.Context, list domain.ShoppingList) error {
	data, err := encodeList(list)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO shopping_lists (key, data, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key)
	DO UPDATE SET data = $2, updated_at = NOW()`
	if _, err := s.db.Exec(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	s.db.Close()
	return nil
}
