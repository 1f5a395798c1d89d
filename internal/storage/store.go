// Package storage persists the shopping list as one JSON document under a
// fixed key.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"comparador/client/internal/domain"
)

type ListStore interface {
	Load(ctx context.Context) (domain.ShoppingList, error)
	Save(ctx context.Context, list domain.ShoppingList) error
	Close() error
}

func encodeList(list domain.ShoppingList) ([]byte, error) {
	if list == nil {
		list = domain.ShoppingList{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shopping list: %w", err)
	}
	return data, nil
}

// decodeList treats a missing or null document as an empty list.
func decodeList(data []byte) (domain.ShoppingList, error) {
	if len(data) == 0 {
		return domain.ShoppingList{}, nil
	}
	var list domain.ShoppingList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode shopping list: %w", err)
	}
	if list == nil {
		list = domain.ShoppingList{}
	}
	return list, nil
}
