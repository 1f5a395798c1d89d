package storage

import (
	"context"
	"fmt"

	"comparador/client/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStore(redisClient *redis.Client, key string) ListStore {
	return &redisStore{
		redisClient: redisClient,
		key:         "comparador:list:" + key,
	}
}

func (s *redisStore) Load(ctx context.Context) (domain.ShoppingList, error) {
	val, err := s.redisClient.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.ShoppingList{}, nil // Nothing saved yet
		}
		return nil, fmt.Errorf("failed to get shopping list %s: %w", s.key, err)
	}
	return decodeList(val)
}

func (s *redisStore) Save(ctx context.Context, list domain.ShoppingList) error {
	data, err := encodeList(list)
	if err != nil {
		return err
	}
	if err := s.redisClient.Set(ctx, s.key, data, 0).Err(); err != nil { // No expiration
		return fmt.Errorf("failed to set shopping list %s: %w", s.key, err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.redisClient.Close()
}
