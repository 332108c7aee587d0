package models

import "time"

// KeyValueEntry is a row of the GORM-backed key-value store.
type KeyValueEntry struct {
	Key       string `gorm:"column:slot;primaryKey;type:varchar(191)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of GORM's pluralization.
func (KeyValueEntry) TableName() string {
	return "kv_entries"
}
