package repositories

import (
	"errors"
	"fmt"

	"parfum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMKeyValueRepository is a GORM implementation of KeyValueRepository.
type GORMKeyValueRepository struct {
	db *gorm.DB
}

// NewGORMKeyValueRepository creates a new instance of GORMKeyValueRepository.
// The kv_entries table must already be migrated.
func NewGORMKeyValueRepository(db *gorm.DB) *GORMKeyValueRepository {
	return &GORMKeyValueRepository{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (r *GORMKeyValueRepository) Get(key string) (string, bool, error) {
	var entry models.KeyValueEntry
	if err := r.db.First(&entry, "slot = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set upserts value under key.
func (r *GORMKeyValueRepository) Set(key, value string) error {
	entry := models.KeyValueEntry{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *GORMKeyValueRepository) Delete(key string) error {
	if err := r.db.Delete(&models.KeyValueEntry{}, "slot = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
