package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"comparador/client/internal/domain"
)

type fileStore struct {
	path string
}

// NewFileStore keeps the list in <dir>/<key>.json.
func NewFileStore(dir, key string) (ListStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %q: %w", dir, err)
	}
	return &fileStore{path: filepath.Join(dir, key+".json")}, nil
}

func (s *fileStore) Load(ctx context.Context) (domain.ShoppingList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ShoppingList{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return decodeList(data)
}

// Save replaces the file atomically through a temp file in the same dir.
func (s *fileStore) Save(ctx context.Context, list domain.ShoppingList) error {
	data, err := encodeList(list)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".list-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *fileStore) Close() error {
	return nil
}
