package repositories

import (
	"context"
	"errors"
	"fmt"

	"techmart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStorageRepository is a GORM implementation of StorageRepository backed
// by the stored_items table.
type GORMStorageRepository struct {
	db *gorm.DB
}

// NewGORMStorageRepository creates a new instance of GORMStorageRepository.
func NewGORMStorageRepository(db *gorm.DB) *GORMStorageRepository {
	return &GORMStorageRepository{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (r *GORMStorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var item models.StoredItem
	if err := r.db.WithContext(ctx).First(&item, "storage_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get stored item %s: %w", key, err)
	}
	return item.Value, true, nil
}

// Set inserts or updates the value stored under key.
func (r *GORMStorageRepository) Set(ctx context.Context, key, value string) error {
	item := models.StoredItem{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to store item %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key.
func (r *GORMStorageRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Delete(&models.StoredItem{}, "storage_key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete stored item %s: %w", key, err)
	}
	return nil
}
