package services_test

import (
	"context"
	"time"

	"techmart/internal/catalog"
	"techmart/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorageRepository is a mock implementation of repositories.StorageRepository
type MockStorageRepository struct {
	mock.Mock
}

func (m *MockStorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStorageRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStorageRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID string, offset, limit int) ([]models.Review, int, error) {
	args := m.Called(ctx, productID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) CreateMany(ctx context.Context, reviews []models.Review) error {
	args := m.Called(ctx, reviews)
	return args.Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEventPublisher records published catalog events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func price(v float64) *float64 { return &v }

// fixtureStore returns a small hand-built catalog.
func fixtureStore() *catalog.Store {
	now := time.Now()
	products := []models.Product{
		{ID: "p1", Name: "Apple Laptop 1000", Category: "Laptops", Brand: "Apple", Price: 45000, OriginalPrice: price(58500), Stock: 5, Rating: 4.6, ReviewCount: 10, SoldToday: 12, IsFeatured: true, IsHot: true, Tags: []string{"apple", "laptops"}, Specifications: map[string]string{"color": "Silver"}, CreatedAt: now},
		{ID: "p2", Name: "Dell Laptop 1001", Category: "Laptops", Brand: "Dell", Price: 30000, Stock: 0, Rating: 3.9, ReviewCount: 4, SoldToday: 30, IsNew: true, Tags: []string{"dell", "laptops"}, CreatedAt: now.Add(-time.Hour)},
		{ID: "p3", Name: "Sony Headphone 1002", Category: "Headphones", Brand: "Sony", Price: 8000, OriginalPrice: price(16000), Stock: 40, Rating: 4.8, ReviewCount: 20, SoldToday: 3, IsHot: true, IsNew: true, Tags: []string{"sony", "headphones"}, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "p4", Name: "Apple Smartwatche 1003", Category: "Smartwatches", Brand: "Apple", Price: 15000, Stock: 8, Rating: 4.1, ReviewCount: 6, SoldToday: 7, IsFeatured: true, Tags: []string{"apple", "smartwatches"}, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "p5", Name: "Bose Speaker 1004", Category: "Speakers", Brand: "Bose", Price: 9000, Stock: 60, Rating: 3.0, ReviewCount: 0, SoldToday: 0, Tags: []string{"bose", "speakers"}, CreatedAt: now.Add(-4 * time.Hour)},
	}
	return catalog.NewStore(catalog.FixedGenerator(products, catalog.DefaultCategories()))
}

func productIDs(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
