package repositories

import (
	"context"
	"slices"
	"sync"
	"time"

	"techmart/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string][]models.Review // keyed by product id
	count   int
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string][]models.Review),
	}
}

// ListByProduct returns a page of reviews for productID, newest first.
func (r *MockReviewRepository) ListByProduct(_ context.Context, productID string, offset, limit int) ([]models.Review, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.reviews[productID]
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]models.Review, end-offset)
	copy(page, all[offset:end])
	return page, total, nil
}

// Create adds a new review.
func (r *MockReviewRepository) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.insert(*review)
	return nil
}

// CreateMany adds reviews in bulk.
func (r *MockReviewRepository) CreateMany(_ context.Context, reviews []models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, review := range reviews {
		if review.ID == "" {
			review.ID = uuid.New().String()
		}
		r.insert(review)
	}
	return nil
}

// Count returns the number of stored reviews.
func (r *MockReviewRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count, nil
}

// insert keeps each product's reviews sorted by CreatedAt descending.
func (r *MockReviewRepository) insert(review models.Review) {
	list := r.reviews[review.ProductID]
	i, _ := slices.BinarySearchFunc(list, review, func(e, target models.Review) int {
		return target.CreatedAt.Compare(e.CreatedAt)
	})
	r.reviews[review.ProductID] = slices.Insert(list, i, review)
	r.count++
}
