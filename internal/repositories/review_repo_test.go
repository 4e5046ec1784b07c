package repositories_test

import (
	"context"
	"testing"
	"time"

	"techmart/internal/models"
	"techmart/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReviews(now time.Time) []models.Review {
	return []models.Review{
		{ID: "r1", ProductID: "p1", Rating: 4, Title: "Old", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "r2", ProductID: "p1", Rating: 5, Title: "Newest", CreatedAt: now},
		{ID: "r3", ProductID: "p2", Rating: 3, Title: "Other", CreatedAt: now.Add(-time.Hour)},
		{ID: "r4", ProductID: "p1", Rating: 3, Title: "Middle", CreatedAt: now.Add(-time.Hour)},
	}
}

func exerciseReviews(t *testing.T, repo repositories.ReviewRepository) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	require.NoError(t, repo.CreateMany(ctx, seedReviews(now)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	page, total, err := repo.ListByProduct(ctx, "p1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "r2", page[0].ID)
	assert.Equal(t, "r4", page[1].ID)

	page, _, err = repo.ListByProduct(ctx, "p1", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "r1", page[0].ID)

	page, total, err = repo.ListByProduct(ctx, "p1", 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)

	review := &models.Review{ProductID: "p2", Rating: 5, Title: "Fresh"}
	require.NoError(t, repo.Create(ctx, review))
	assert.NotEmpty(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())

	page, total, err = repo.ListByProduct(ctx, "p2", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, review.ID, page[0].ID)

	page, total, err = repo.ListByProduct(ctx, "unknown", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, page)
}

func TestMockReviewRepository(t *testing.T) {
	exerciseReviews(t, repositories.NewMockReviewRepository())
}

func TestGORMReviewRepository(t *testing.T) {
	exerciseReviews(t, repositories.NewGORMReviewRepository(openTestDB(t)))
}
