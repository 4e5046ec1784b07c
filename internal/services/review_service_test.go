package services_test

import (
	"context"
	"errors"
	"testing"

	"techmart/internal/models"
	"techmart/internal/repositories"
	"techmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewService_ProductReviews(t *testing.T) {
	repo := new(MockReviewRepository)
	service := services.NewReviewService(repo, fixtureStore(), nil, services.NoLatency)

	reviews := []models.Review{{ID: "r3"}, {ID: "r4"}}
	repo.On("ListByProduct", mock.Anything, "p1", 2, 2).Return(reviews, 5, nil).Once()

	page, err := service.ProductReviews(context.Background(), "p1", 2, 2)

	require.NoError(t, err)
	assert.Equal(t, reviews, page.Items)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	repo.AssertExpectations(t)
}

func TestReviewService_ProductReviewsDefaults(t *testing.T) {
	repo := new(MockReviewRepository)
	service := services.NewReviewService(repo, fixtureStore(), nil, services.NoLatency)

	repo.On("ListByProduct", mock.Anything, "p2", 0, 10).Return(nil, 0, nil).Once()

	page, err := service.ProductReviews(context.Background(), "p2", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestReviewService_ProductReviewsErrors(t *testing.T) {
	repo := new(MockReviewRepository)
	service := services.NewReviewService(repo, fixtureStore(), nil, services.NoLatency)
	ctx := context.Background()

	_, err := service.ProductReviews(ctx, "ghost", 1, 10)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	repo.On("ListByProduct", mock.Anything, "p1", 0, 10).Return(nil, 0, errors.New("database error")).Once()
	_, err = service.ProductReviews(ctx, "p1", 1, 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	repo.AssertExpectations(t)
}

func TestReviewService_AddReview(t *testing.T) {
	repo := new(MockReviewRepository)
	events := new(MockEventPublisher)
	service := services.NewReviewService(repo, fixtureStore(), events, services.NoLatency)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.ProductID == "p1" && r.Rating == 5 && r.UserID == services.CurrentUser.ID
	})).Return(nil).Once()
	events.On("Publish", services.EventReviewCreated, mock.Anything).Return(nil).Once()

	review, err := service.AddReview(context.Background(), "p1", models.NewReview{
		Rating:  5,
		Title:   "Superb",
		Comment: "Fast and quiet.",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "Superb", review.Title)
	assert.False(t, review.Verified)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestReviewService_AddReviewValidation(t *testing.T) {
	repo := new(MockReviewRepository)
	service := services.NewReviewService(repo, fixtureStore(), nil, services.NoLatency)

	_, err := service.AddReview(context.Background(), "p1", models.NewReview{Rating: 7, Title: "ok"})

	assert.ErrorIs(t, err, services.ErrInvalidReview)
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	fields := map[string]bool{}
	for _, fe := range validationErrors {
		fields[fe.Field()] = true
	}
	assert.True(t, fields["Rating"])
	assert.True(t, fields["Title"])
	assert.True(t, fields["Comment"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_AddReviewUnknownProduct(t *testing.T) {
	repo := new(MockReviewRepository)
	service := services.NewReviewService(repo, fixtureStore(), nil, services.NoLatency)

	_, err := service.AddReview(context.Background(), "ghost", models.NewReview{Rating: 3, Title: "Meh", Comment: "fine"})

	assert.ErrorIs(t, err, services.ErrProductNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SeedReviews(t *testing.T) {
	repo := repositories.NewMockReviewRepository()
	service := services.NewReviewService(repo, fixtureStore(), nil, services.NoLatency)
	ctx := context.Background()

	require.NoError(t, service.SeedReviews(ctx, 30, 9))
	require.NoError(t, service.SeedReviews(ctx, 30, 9))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, count)
}
