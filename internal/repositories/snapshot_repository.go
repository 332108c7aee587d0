package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"parfum/internal/models"
)

// DefaultSnapshotKey is the slot holding the serialized product collection.
const DefaultSnapshotKey = "perfume_admin_products"

// ErrSnapshotNotFound is returned by Load when no snapshot has been written yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository reads and writes the whole product collection at once.
type SnapshotRepository interface {
	Load() ([]models.Product, error)
	Save(products []models.Product) error
}

// KVSnapshotRepository stores the collection as a JSON array under one key.
type KVSnapshotRepository struct {
	kv  KeyValueRepository
	key string
}

// NewKVSnapshotRepository creates a snapshot repository on top of kv.
// An empty key selects DefaultSnapshotKey.
func NewKVSnapshotRepository(kv KeyValueRepository, key string) *KVSnapshotRepository {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &KVSnapshotRepository{kv: kv, key: key}
}

// Key returns the slot name.
func (r *KVSnapshotRepository) Key() string {
	return r.key
}

// Load deserializes the stored collection.
func (r *KVSnapshotRepository) Load() ([]models.Product, error) {
	raw, ok, err := r.kv.Get(r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", r.key, err)
	}
	if !ok {
		return nil, ErrSnapshotNotFound
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", r.key, err)
	}
	return products, nil
}

// Save serializes products and replaces the stored snapshot.
func (r *KVSnapshotRepository) Save(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.kv.Set(r.key, string(raw)); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", r.key, err)
	}
	return nil
}
