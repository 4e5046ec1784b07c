package repositories

import (
	"context"

	"techmart/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// ListByProduct returns one page of a product's reviews, newest first,
	// together with the product's total review count.
	ListByProduct(ctx context.Context, productID string, offset, limit int) ([]models.Review, int, error)
	Create(ctx context.Context, review *models.Review) error
	CreateMany(ctx context.Context, reviews []models.Review) error
	Count(ctx context.Context) (int, error)
}
