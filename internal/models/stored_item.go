package models

import "time"

// StoredItem is one key/value entry of shopper-side storage.
type StoredItem struct {
	Key       string `gorm:"primaryKey;column:storage_key;type:varchar(255)"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
