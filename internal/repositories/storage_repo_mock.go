package repositories

import (
	"context"
	"sync"
)

// MockStorageRepository is an in-memory implementation of StorageRepository.
type MockStorageRepository struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMockStorageRepository creates a new instance of MockStorageRepository.
func NewMockStorageRepository() *MockStorageRepository {
	return &MockStorageRepository{
		items: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (r *MockStorageRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[key]
	return value, ok, nil
}

// Set stores value under key, replacing any previous value.
func (r *MockStorageRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *MockStorageRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
	return nil
}
