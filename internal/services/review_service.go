package services

import (
	"context"
	"fmt"

	"techmart/internal/catalog"
	"techmart/internal/models"
	"techmart/internal/query"
	"techmart/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultReviewLimit = 10

// CurrentUser is the author recorded on reviews submitted through the API.
var CurrentUser = models.ReviewUser{
	ID:     "current-user",
	Name:   "Current User",
	Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&w=100",
}

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	repo     repositories.ReviewRepository
	store    *catalog.Store
	events   EventPublisher
	latency  Latency
	validate *validator.Validate
}

// NewReviewService creates a new ReviewService. events may be nil.
func NewReviewService(repo repositories.ReviewRepository, store *catalog.Store, events EventPublisher, latency Latency) *ReviewService {
	return &ReviewService{
		repo:     repo,
		store:    store,
		events:   events,
		latency:  latency,
		validate: validator.New(),
	}
}

// ProductReviews returns one page of a product's reviews, newest first.
func (s *ReviewService) ProductReviews(ctx context.Context, productID string, page, limit int) (models.PageResult[models.Review], error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return models.PageResult[models.Review]{}, err
	}
	if _, ok := s.store.Find(productID); !ok {
		return models.PageResult[models.Review]{}, fmt.Errorf("product with ID %s: %w", productID, ErrProductNotFound)
	}

	page, limit = query.NormalizePage(page, limit, defaultReviewLimit)
	reviews, total, err := s.repo.ListByProduct(ctx, productID, query.Offset(page, limit), limit)
	if err != nil {
		return models.PageResult[models.Review]{}, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return query.NewPage(reviews, total, page, limit), nil
}

// AddReview validates and stores a new review for a product.
func (s *ReviewService) AddReview(ctx context.Context, productID string, input models.NewReview) (*models.Review, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	if _, ok := s.store.Find(productID); !ok {
		return nil, fmt.Errorf("product with ID %s: %w", productID, ErrProductNotFound)
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    CurrentUser.ID,
		User:      CurrentUser,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review for product %s: %w", productID, err)
	}
	zap.L().Info("Review created", zap.String("reviewID", review.ID), zap.String("productID", productID))

	publish(s.events, EventReviewCreated, map[string]interface{}{
		"reviewID":  review.ID,
		"productID": productID,
		"rating":    review.Rating,
	})
	return review, nil
}

// SeedReviews stores generated reviews when the repository is empty.
func (s *ReviewService) SeedReviews(ctx context.Context, count int, seed uint64) error {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count reviews: %w", err)
	}
	if existing > 0 {
		return nil
	}
	reviews := catalog.GenerateReviews(s.store.All(), count, seed)
	if err := s.repo.CreateMany(ctx, reviews); err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}
	zap.L().Info("Seeded reviews", zap.Int("count", len(reviews)))
	return nil
}
