// Package query filters, sorts and paginates a product snapshot.
//
// Nothing here does I/O. Run and Filter leave the catalog slice untouched;
// Sort reorders only the slice it is handed. Malformed filter values fall
// back to "no filter" or the featured sort instead of failing.
package query

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"techmart/internal/models"
)

// Run applies spec to products and returns the requested page.
func Run(products []models.Product, spec models.FilterSpec, ranges []models.PriceRange) models.PageResult[models.Product] {
	filtered := Filter(products, spec, ranges)
	Sort(filtered, spec.SortBy)
	return Paginate(filtered, spec.Page, spec.Limit)
}

// Filter returns a new slice with the products matching every active
// predicate of spec, in catalog order.
func Filter(products []models.Product, spec models.FilterSpec, ranges []models.PriceRange) []models.Product {
	category := strings.ToLower(strings.TrimSpace(spec.Category))
	search := strings.ToLower(spec.Search)

	brands := make(map[string]struct{}, len(spec.Brands))
	for _, b := range spec.Brands {
		brands[strings.ToLower(b)] = struct{}{}
	}

	priceRange, hasRange := FindPriceRange(ranges, spec.PriceRangeID)
	freeShipping := spec.HasFeature(models.FeatureFreeShipping)
	inStockFeature := spec.HasFeature(models.FeatureInStock)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != models.CategoryAll && strings.ToLower(p.Category) != category {
			continue
		}
		if search != "" && !matchesLower(p, search) {
			continue
		}
		if len(brands) > 0 {
			if _, ok := brands[strings.ToLower(p.Brand)]; !ok {
				continue
			}
		}
		if hasRange && !priceRange.Contains(p.Price) {
			continue
		}
		if spec.MinRating != nil && p.Rating < *spec.MinRating {
			continue
		}
		if freeShipping && !p.Delivery.Free {
			continue
		}
		if inStockFeature && p.Stock <= 0 {
			continue
		}
		if spec.InStock && p.Stock <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchesText reports whether text occurs, ignoring case, in the product's
// name, description, brand or any tag. Empty text matches everything.
func MatchesText(p models.Product, text string) bool {
	if text == "" {
		return true
	}
	return matchesLower(p, strings.ToLower(text))
}

func matchesLower(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FindPriceRange looks up a price band by id.
func FindPriceRange(ranges []models.PriceRange, id string) (models.PriceRange, bool) {
	if id == "" {
		return models.PriceRange{}, false
	}
	for _, r := range ranges {
		if r.ID == id {
			return r, true
		}
	}
	return models.PriceRange{}, false
}

// FeaturedScore is the composite rank used by the featured sort.
func FeaturedScore(p models.Product) float64 {
	score := 2 * p.Rating
	if p.IsFeatured {
		score += 10
	}
	if p.IsHot {
		score += 8
	}
	if p.IsNew {
		score += 6
	}
	return score
}

// Sort orders products in place by sortBy. The sort is stable, so ties keep
// their incoming order. Unknown values use the featured order.
func Sort(products []models.Product, sortBy string) {
	slices.SortStableFunc(products, comparator(sortBy))
}

func comparator(sortBy string) func(a, b models.Product) int {
	switch sortBy {
	case models.SortPriceLow:
		return func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case models.SortPriceHigh:
		return func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case models.SortRating:
		return func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case models.SortDiscount:
		return func(a, b models.Product) int { return cmp.Compare(b.DiscountFraction(), a.DiscountFraction()) }
	case models.SortNewest:
		return func(a, b models.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case models.SortPopularity:
		return func(a, b models.Product) int { return cmp.Compare(b.SoldToday, a.SoldToday) }
	default:
		return func(a, b models.Product) int { return cmp.Compare(FeaturedScore(b), FeaturedScore(a)) }
	}
}

// Paginate slices items into the requested page. A page below 1 is treated
// as 1 and a limit below 1 as models.DefaultLimit; the normalized values are
// echoed in the result. Out-of-range pages produce an empty Items slice.
func Paginate[T any](items []T, page, limit int) models.PageResult[T] {
	page, limit = NormalizePage(page, limit, models.DefaultLimit)

	total := len(items)
	start := min(Offset(page, limit), total)
	end := start + min(limit, total-start)

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])
	return NewPage(pageItems, total, page, limit)
}

// NewPage builds the page metadata for items already cut from a result set
// of total entries. page and limit must be at least 1.
func NewPage[T any](items []T, total, page, limit int) models.PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return models.PageResult[T]{
		Items:       items,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNext:     total > 0 && page <= (total-1)/limit,
		HasPrevious: page > 1,
	}
}

// Offset returns the number of entries before page, saturating at
// math.MaxInt instead of overflowing.
func Offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// NormalizePage replaces a page below 1 with 1 and a limit below 1 with
// defaultLimit.
func NormalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
