package repositories

import (
	"context"
	"fmt"
	"time"

	"techmart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// ListByProduct retrieves a page of reviews for a product, newest first.
func (r *GORMReviewRepository) ListByProduct(ctx context.Context, productID string, offset, limit int) ([]models.Review, int, error) {
	var total int64
	db := r.db.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews for product %s: %w", productID, err)
	}

	reviews := []models.Review{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, int(total), nil
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// CreateMany inserts reviews in batches.
func (r *GORMReviewRepository) CreateMany(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	for i := range reviews {
		if reviews[i].ID == "" {
			reviews[i].ID = uuid.New().String()
		}
	}
	if err := r.db.WithContext(ctx).CreateInBatches(reviews, 100).Error; err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	return nil
}

// Count returns the total number of reviews.
func (r *GORMReviewRepository) Count(ctx context.Context) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return int(total), nil
}
