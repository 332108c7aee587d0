package repositories

import (
	"sync"
)

// MemoryKeyValueRepository is an in-memory implementation of KeyValueRepository.
type MemoryKeyValueRepository struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMemoryKeyValueRepository creates an empty MemoryKeyValueRepository.
func NewMemoryKeyValueRepository() *MemoryKeyValueRepository {
	return &MemoryKeyValueRepository{
		entries: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (r *MemoryKeyValueRepository) Get(key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	return value, ok, nil
}

// Set stores value under key, replacing any previous value.
func (r *MemoryKeyValueRepository) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = value
	return nil
}

// Delete removes key.
func (r *MemoryKeyValueRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

// NopKeyValueRepository finds nothing and drops every write. It stands in for
// contexts without durable local storage.
type NopKeyValueRepository struct{}

func (NopKeyValueRepository) Get(string) (string, bool, error) { return "", false, nil }
func (NopKeyValueRepository) Set(string, string) error         { return nil }
func (NopKeyValueRepository) Delete(string) error              { return nil }
