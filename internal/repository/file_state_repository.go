package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/storage"
)

// FileStateRepository keeps each persisted key as a JSON file on disk, the
// console equivalent of browser local storage.
type FileStateRepository struct {
	storage *storage.LocalStorage
}

// NewFileStateRepository constructs a file-backed repository.
func NewFileStateRepository(store *storage.LocalStorage) *FileStateRepository {
	return &FileStateRepository{storage: store}
}

// Get unmarshals the stored value for key into dest.
func (r *FileStateRepository) Get(_ context.Context, key string, dest interface{}) error {
	raw, err := r.storage.Read(fileName(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return appErrors.ErrStateMiss
		}
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}
	return nil
}

// Set marshals value and stores it under key.
func (r *FileStateRepository) Set(_ context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	return r.storage.Save(fileName(key), payload)
}

// Delete removes the stored key.
func (r *FileStateRepository) Delete(_ context.Context, key string) error {
	return r.storage.Delete(fileName(key))
}

// Close is a no-op for the file backend.
func (r *FileStateRepository) Close() error {
	return nil
}

func fileName(key string) string {
	return key + ".json"
}
