package catalog

import (
	"fmt"
	"time"

	"techmart/internal/models"
)

var reviewers = []models.ReviewUser{
	{ID: "user1", Name: "Alex Johnson", Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100"},
	{ID: "user2", Name: "Sam Smith", Avatar: "https://images.unsplash.com/photo-1494790108755-2616b786d4d1?w=100"},
	{ID: "user3", Name: "Taylor Davis", Avatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100"},
	{ID: "user4", Name: "Jordan Lee", Avatar: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=100"},
	{ID: "user5", Name: "Casey Kim", Avatar: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=100"},
}

var reviewTitles = []string{"Great product!", "Good value", "Highly recommended", "Works as expected", "Could be better"}

const reviewComment = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

// GenerateReviews creates count seed reviews spread over the given products.
func GenerateReviews(products []models.Product, count int, seed uint64) []models.Review {
	if len(products) == 0 || count <= 0 {
		return []models.Review{}
	}
	r := NewRand(seed)
	now := time.Now()

	reviews := make([]models.Review, 0, count)
	for i := 0; i < count; i++ {
		user := reviewers[r.IntN(len(reviewers))]
		reviews = append(reviews, models.Review{
			ID:        fmt.Sprintf("review-%d", i+1),
			ProductID: products[r.IntN(len(products))].ID,
			UserID:    user.ID,
			User:      user,
			Rating:    r.IntN(3) + 3,
			Title:     reviewTitles[r.IntN(len(reviewTitles))],
			Comment:   reviewComment,
			Verified:  r.Float64() > 0.5,
			Helpful:   r.IntN(50),
			CreatedAt: now.Add(-time.Duration(r.Float64()*1e10) * time.Millisecond),
		})
	}
	return reviews
}
