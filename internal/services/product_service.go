package services

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"techmart/internal/catalog"
	"techmart/internal/models"
	"techmart/internal/query"
	"techmart/internal/repositories"
)

const (
	maxRecentlyViewed = 20
	defaultRailLimit  = 8
	defaultRelated    = 4
	lowStockThreshold = 10
	topGroupCount     = 5
)

// ProductService handles catalog queries and the shopper lists kept next to them.
type ProductService struct {
	store   *catalog.Store
	storage repositories.StorageRepository
	events  EventPublisher
	latency Latency
	ranges  []models.PriceRange
	shopper string
	locks   *listLocks
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(store *catalog.Store, storage repositories.StorageRepository, events EventPublisher, latency Latency) *ProductService {
	return &ProductService{
		store:   store,
		storage: storage,
		events:  events,
		latency: latency,
		ranges:  models.PriceRanges,
		locks:   &listLocks{},
	}
}

// ForShopper returns a service whose wishlist, compare and recently-viewed
// lists belong to one shopper.
func (s *ProductService) ForShopper(shopperID string) *ProductService {
	scoped := *s
	scoped.storage = repositories.NewScopedStorage(s.storage, shopperID)
	scoped.shopper = shopperID
	return &scoped
}

// FetchProducts runs a complete filter spec against the catalog.
func (s *ProductService) FetchProducts(ctx context.Context, spec models.FilterSpec) (models.PageResult[models.Product], error) {
	s.store.Initialize()
	if err := wait(ctx, s.latency.List); err != nil {
		return models.PageResult[models.Product]{}, err
	}
	return query.Run(s.store.All(), spec, s.ranges), nil
}

// FetchProductByID returns a product and records it as recently viewed.
// Unknown ids return ErrProductNotFound and leave the list unchanged.
func (s *ProductService) FetchProductByID(ctx context.Context, id string) (*models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}

	s.trackView(ctx, id)
	publish(s.events, EventProductViewed, map[string]interface{}{
		"productID": id,
		"shopperID": s.shopper,
	})
	return product, nil
}

// Search is the type-ahead lookup: catalog order, at most limit results,
// no pagination. Blank text returns nothing.
func (s *ProductService) Search(ctx context.Context, text string, limit int) ([]models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	results := []models.Product{}
	text = strings.TrimSpace(text)
	if text == "" || limit <= 0 {
		return results, nil
	}
	for _, p := range s.store.All() {
		if query.MatchesText(p, text) {
			results = append(results, p)
			if len(results) == limit {
				break
			}
		}
	}
	return results, nil
}

// RelatedProducts returns products sharing the category or brand of id.
// An unknown id yields an empty list.
func (s *ProductService) RelatedProducts(ctx context.Context, id string, limit int) ([]models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	limit = railLimit(limit, defaultRelated)
	related := []models.Product{}
	product, ok := s.store.Find(id)
	if !ok {
		return related, nil
	}
	for _, p := range s.store.All() {
		if p.ID != id && (p.Category == product.Category || p.Brand == product.Brand) {
			related = append(related, p)
			if len(related) == limit {
				break
			}
		}
	}
	return related, nil
}

// TrendingProducts returns hot products, best selling first.
func (s *ProductService) TrendingProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return s.rail(ctx, limit, func(p models.Product) bool { return p.IsHot }, bySoldToday)
}

// FeaturedProducts returns featured products in catalog order.
func (s *ProductService) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return s.rail(ctx, limit, func(p models.Product) bool { return p.IsFeatured }, nil)
}

// NewArrivals returns products flagged as new in catalog order.
func (s *ProductService) NewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	return s.rail(ctx, limit, func(p models.Product) bool { return p.IsNew }, nil)
}

// BestSellers returns the products with the most sales today.
func (s *ProductService) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	return s.rail(ctx, limit, nil, bySoldToday)
}

// ProductsOnSale returns discounted products, biggest discount first.
func (s *ProductService) ProductsOnSale(ctx context.Context, limit int) ([]models.Product, error) {
	return s.rail(ctx, limit, models.Product.OnSale, func(a, b models.Product) int {
		return cmp.Compare(b.DiscountFraction(), a.DiscountFraction())
	})
}

// Categories returns the category list.
func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	return s.store.Categories(), nil
}

// ProductsByCategory runs spec with its category replaced by categoryID.
func (s *ProductService) ProductsByCategory(ctx context.Context, categoryID string, spec models.FilterSpec) (models.PageResult[models.Product], error) {
	spec.Category = categoryID
	return s.FetchProducts(ctx, spec)
}

// ProductStats summarises stock, ratings and sales across the catalog.
func (s *ProductService) ProductStats(ctx context.Context) (*models.ProductStats, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	products := s.store.All()
	stats := &models.ProductStats{
		TotalProducts:   len(products),
		TotalCategories: len(s.store.Categories()),
		TopCategories:   []models.RankedGroup{},
		TopBrands:       []models.RankedGroup{},
	}
	if len(products) == 0 {
		return stats, nil
	}

	var ratingSum float64
	categories := newGroupCounter()
	brands := newGroupCounter()
	for _, p := range products {
		switch {
		case p.Stock == 0:
			stats.OutOfStock++
		case p.Stock < lowStockThreshold:
			stats.LowStock++
		}
		if p.Stock > 0 {
			stats.ActiveProducts++
		}
		ratingSum += p.Rating
		stats.TotalReviews += p.ReviewCount
		stats.MonthlySales += p.SoldToday * 30

		revenue := p.Price * float64(p.SoldToday) * 30
		stats.MonthlyRevenue += revenue
		categories.add(p.Category, revenue)
		brands.add(p.Brand, revenue)
	}

	stats.AverageRating = math.Round(ratingSum/float64(len(products))*10) / 10
	stats.TotalBrands = len(brands.order)
	stats.TopCategories = categories.top(topGroupCount)
	stats.TopBrands = brands.top(topGroupCount)
	return stats, nil
}

// CheckStock reports whether quantity units of a product are available.
func (s *ProductService) CheckStock(ctx context.Context, id string, quantity int) (*models.StockStatus, error) {
	if err := wait(ctx, s.latency.Lookup); err != nil {
		return nil, err
	}
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}
	return &models.StockStatus{
		InStock:           product.Stock >= quantity,
		AvailableQuantity: product.Stock,
	}, nil
}

// Specifications returns the display specifications of a product.
func (s *ProductService) Specifications(ctx context.Context, id string) (map[string]string, error) {
	if err := wait(ctx, s.latency.Lookup); err != nil {
		return nil, err
	}
	product, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return product.Specifications, nil
}

func (s *ProductService) find(id string) (*models.Product, error) {
	product, ok := s.store.Find(id)
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// rail selects products matching keep (all when nil), optionally orders a
// copy with less, and truncates to limit. The catalog itself is never reordered.
func (s *ProductService) rail(ctx context.Context, limit int, keep func(models.Product) bool, less func(a, b models.Product) int) ([]models.Product, error) {
	if err := wait(ctx, s.latency.Detail); err != nil {
		return nil, err
	}
	limit = railLimit(limit, defaultRailLimit)

	selected := make([]models.Product, 0, limit)
	for _, p := range s.store.All() {
		if keep == nil || keep(p) {
			selected = append(selected, p)
		}
	}
	if less != nil {
		slices.SortStableFunc(selected, less)
	}
	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected, nil
}

func bySoldToday(a, b models.Product) int {
	return cmp.Compare(b.SoldToday, a.SoldToday)
}

func railLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	return limit
}

type groupCounter struct {
	order   []string
	counts  map[string]int
	revenue map[string]float64
}

func newGroupCounter() *groupCounter {
	return &groupCounter{counts: map[string]int{}, revenue: map[string]float64{}}
}

func (g *groupCounter) add(name string, revenue float64) {
	if _, ok := g.counts[name]; !ok {
		g.order = append(g.order, name)
	}
	g.counts[name]++
	g.revenue[name] += revenue
}

// top returns the n largest groups by count; ties keep first-seen order.
func (g *groupCounter) top(n int) []models.RankedGroup {
	groups := make([]models.RankedGroup, 0, len(g.order))
	for _, name := range g.order {
		groups = append(groups, models.RankedGroup{Name: name, Count: g.counts[name], Revenue: g.revenue[name]})
	}
	slices.SortStableFunc(groups, func(a, b models.RankedGroup) int { return cmp.Compare(b.Count, a.Count) })
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
