package models

import "time"

// KVEntry stores one JSON-encoded collection under its logical key.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;type:text;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
