package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"techmart/internal/catalog"
	"techmart/internal/models"
	"techmart/internal/repositories"
	"techmart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(store *catalog.Store) (*services.ProductService, *repositories.MockStorageRepository) {
	storage := repositories.NewMockStorageRepository()
	return services.NewProductService(store, storage, nil, services.NoLatency), storage
}

func storedIDs(t *testing.T, storage repositories.StorageRepository, key string) []string {
	t.Helper()
	raw, ok, err := storage.Get(context.Background(), key)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(raw), &ids))
	return ids
}

func TestProductService_FetchProducts(t *testing.T) {
	service, _ := newService(catalog.NewStore(catalog.NewGenerator(50, 11)))

	res, err := service.FetchProducts(context.Background(), models.DefaultFilterSpec())

	require.NoError(t, err)
	assert.Equal(t, 50, res.Total)
	assert.Len(t, res.Items, 12)
	assert.Equal(t, 5, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrevious)
}

func TestProductService_FetchProductsHonoursCancellation(t *testing.T) {
	service := services.NewProductService(fixtureStore(), repositories.NewMockStorageRepository(), nil, services.LatencyFrom(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.FetchProducts(ctx, models.DefaultFilterSpec())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProductService_FetchProductsWaitsForLatency(t *testing.T) {
	service := services.NewProductService(fixtureStore(), repositories.NewMockStorageRepository(), nil, services.LatencyFrom(30*time.Millisecond))

	start := time.Now()
	_, err := service.FetchProducts(context.Background(), models.DefaultFilterSpec())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestProductService_FetchProductByID(t *testing.T) {
	events := new(MockEventPublisher)
	storage := repositories.NewMockStorageRepository()
	service := services.NewProductService(fixtureStore(), storage, events, services.NoLatency)

	events.On("Publish", services.EventProductViewed, mock.Anything).Return(nil).Once()

	product, err := service.FetchProductByID(context.Background(), "p3")

	require.NoError(t, err)
	assert.Equal(t, "Sony Headphone 1002", product.Name)
	assert.Equal(t, []string{"p3"}, storedIDs(t, storage, repositories.RecentlyViewedKey))
	events.AssertExpectations(t)
}

func TestProductService_FetchProductByIDNotFound(t *testing.T) {
	service, storage := newService(fixtureStore())
	ctx := context.Background()

	_, err := service.FetchProductByID(ctx, "p1")
	require.NoError(t, err)

	product, err := service.FetchProductByID(ctx, "does-not-exist")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Contains(t, err.Error(), "does-not-exist")
	assert.Equal(t, []string{"p1"}, storedIDs(t, storage, repositories.RecentlyViewedKey))
}

func TestProductService_RecentlyViewedIsBoundedMostRecentFirst(t *testing.T) {
	service, storage := newService(catalog.NewStore(catalog.NewGenerator(25, 5)))
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := service.FetchProductByID(ctx, fmt.Sprintf("product-%d", i))
		require.NoError(t, err)
	}
	ids := storedIDs(t, storage, repositories.RecentlyViewedKey)
	require.Len(t, ids, 20)
	assert.Equal(t, "product-25", ids[0])
	assert.Equal(t, "product-6", ids[19])

	_, err := service.FetchProductByID(ctx, "product-10")
	require.NoError(t, err)
	ids = storedIDs(t, storage, repositories.RecentlyViewedKey)
	assert.Len(t, ids, 20)
	assert.Equal(t, "product-10", ids[0])
	assert.Equal(t, "product-25", ids[1])

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}

	recent, err := service.RecentlyViewed(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"product-10", "product-25", "product-24"}, productIDs(recent))
}

func TestProductService_Search(t *testing.T) {
	service, _ := newService(fixtureStore())
	ctx := context.Background()

	results, err := service.Search(ctx, "apple", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p4"}, productIDs(results))

	results, err = service.Search(ctx, "LAPTOP", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, productIDs(results))

	results, err = service.Search(ctx, "   ", 10)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestProductService_Rails(t *testing.T) {
	store := fixtureStore()
	service, _ := newService(store)
	ctx := context.Background()

	trending, err := service.TrendingProducts(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, productIDs(trending))

	featured, err := service.FeaturedProducts(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p4"}, productIDs(featured))

	arrivals, err := service.NewArrivals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, productIDs(arrivals))

	best, err := service.BestSellers(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1", "p4"}, productIDs(best))

	sale, err := service.ProductsOnSale(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1"}, productIDs(sale))

	related, err := service.RelatedProducts(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p4"}, productIDs(related))

	related, err = service.RelatedProducts(ctx, "nope", 4)
	require.NoError(t, err)
	assert.Empty(t, related)

	// Rails work on copies; the catalog keeps its order.
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, productIDs(store.All()))
}

func TestProductService_ProductsByCategory(t *testing.T) {
	service, _ := newService(fixtureStore())
	spec := models.DefaultFilterSpec()
	spec.SortBy = models.SortPriceLow

	res, err := service.ProductsByCategory(context.Background(), "laptops", spec)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"p2", "p1"}, productIDs(res.Items))
}

func TestProductService_Categories(t *testing.T) {
	service, _ := newService(fixtureStore())

	categories, err := service.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 10)
	assert.Equal(t, "laptops", categories[0].ID)
	assert.Equal(t, 2, categories[0].ProductCount)
}

func TestProductService_ProductStats(t *testing.T) {
	service, _ := newService(fixtureStore())

	stats, err := service.ProductStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalProducts)
	assert.Equal(t, 4, stats.ActiveProducts)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, 2, stats.LowStock)
	assert.Equal(t, 10, stats.TotalCategories)
	assert.Equal(t, 4, stats.TotalBrands)
	assert.Equal(t, 4.1, stats.AverageRating)
	assert.Equal(t, 40, stats.TotalReviews)
	assert.Equal(t, 1560, stats.MonthlySales)
	require.NotEmpty(t, stats.TopCategories)
	assert.Equal(t, "Laptops", stats.TopCategories[0].Name)
	assert.Equal(t, 2, stats.TopCategories[0].Count)
	assert.Equal(t, (45000*12+30000*30)*30.0, stats.TopCategories[0].Revenue)
	assert.Equal(t, "Apple", stats.TopBrands[0].Name)
}

func TestProductService_CheckStock(t *testing.T) {
	service, _ := newService(fixtureStore())
	ctx := context.Background()

	status, err := service.CheckStock(ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, &models.StockStatus{InStock: true, AvailableQuantity: 5}, status)

	status, err = service.CheckStock(ctx, "p1", 6)
	require.NoError(t, err)
	assert.False(t, status.InStock)

	status, err = service.CheckStock(ctx, "p2", 0)
	require.NoError(t, err)
	assert.False(t, status.InStock)

	_, err = service.CheckStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestProductService_Specifications(t *testing.T) {
	service, _ := newService(fixtureStore())

	specs, err := service.Specifications(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Silver", specs["color"])

	_, err = service.Specifications(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestProductService_HomeFeed(t *testing.T) {
	service := services.NewProductService(fixtureStore(), repositories.NewMockStorageRepository(), nil, services.LatencyFrom(15*time.Millisecond))

	feed, err := service.HomeFeed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p4"}, productIDs(feed.Featured))
	assert.Equal(t, []string{"p1", "p3"}, productIDs(feed.Trending))
	assert.Equal(t, []string{"p2", "p3"}, productIDs(feed.NewArrivals))
	assert.Len(t, feed.BestSellers, 5)
	assert.Equal(t, []string{"p3", "p1"}, productIDs(feed.OnSale))
}

func TestProductService_HomeFeedCancelled(t *testing.T) {
	service := services.NewProductService(fixtureStore(), repositories.NewMockStorageRepository(), nil, services.LatencyFrom(time.Minute))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := service.HomeFeed(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
