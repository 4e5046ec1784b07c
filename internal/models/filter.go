package models

// Sort option ids understood by the query engine.
const (
	SortFeatured   = "featured"
	SortNewest     = "newest"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortRating     = "rating"
	SortDiscount   = "discount"
	SortPopularity = "popularity"
)

// Feature tokens understood by the query engine.
const (
	FeatureFreeShipping = "free-shipping"
	FeatureInStock      = "in-stock"
)

// CategoryAll matches every category.
const CategoryAll = "all"

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// FilterSpec is one complete catalog query. Callers build a full spec (usually
// starting from DefaultFilterSpec); the engine never merges partial state.
type FilterSpec struct {
	Category     string   `json:"category"`
	Search       string   `json:"search"`
	Brands       []string `json:"brands"`
	PriceRangeID string   `json:"priceRange,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	Features     []string `json:"features"`
	InStock      bool     `json:"inStock"`
	SortBy       string   `json:"sortBy"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
}

// DefaultFilterSpec returns the storefront's default query.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Category: CategoryAll,
		Brands:   []string{},
		Features: []string{},
		SortBy:   SortFeatured,
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}
}

// HasFeature reports whether the spec requests the given feature token.
func (f FilterSpec) HasFeature(token string) bool {
	for _, ft := range f.Features {
		if ft == token {
			return true
		}
	}
	return false
}

// PriceRange is one band of the price filter, min inclusive and max exclusive.
type PriceRange struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Contains reports whether price falls in [Min, Max).
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price < r.Max
}

// PriceRanges is the price filter table offered to shoppers.
var PriceRanges = []PriceRange{
	{ID: "under-10k", Label: "Under ETB 10,000", Min: 0, Max: 10000},
	{ID: "10k-30k", Label: "ETB 10,000 - 30,000", Min: 10000, Max: 30000},
	{ID: "30k-60k", Label: "ETB 30,000 - 60,000", Min: 30000, Max: 60000},
	{ID: "above-60k", Label: "ETB 60,000+", Min: 60000, Max: 1000000},
}

// SortOption is an entry of the sort control.
type SortOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SortOptions is the sort control table. The engine also accepts SortPopularity.
var SortOptions = []SortOption{
	{ID: SortFeatured, Label: "Featured"},
	{ID: SortNewest, Label: "Newest"},
	{ID: SortPriceLow, Label: "Price: Low to High"},
	{ID: SortPriceHigh, Label: "Price: High to Low"},
	{ID: SortRating, Label: "Highest Rated"},
	{ID: SortDiscount, Label: "Best Discount"},
}

// IsSupportedSort reports whether id is a sort the engine implements.
func IsSupportedSort(id string) bool {
	if id == SortPopularity {
		return true
	}
	for _, o := range SortOptions {
		if o.ID == id {
			return true
		}
	}
	return false
}
