package storage

import (
	"context"
	"sync"

	"comparador/client/internal/domain"
)

// memoryStore keeps the encoded document only, so loads never alias saved slices.
type memoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() ListStore {
	return &memoryStore{}
}

func (s *memoryStore) Load(ctx context.Context) (domain.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeList(s.data)
}

func (s *memoryStore) Save(ctx context.Context, list domain.ShoppingList) error {
	data, err := encodeList(list)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
