package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"techmart/internal/models"
)

// DefaultSize is the number of products in the generated catalog.
const DefaultSize = 50

var (
	brands = []string{"Apple", "Samsung", "Sony", "Dell", "HP", "Lenovo", "Asus", "Microsoft", "LG", "Bose"}
	colors = []string{"Black", "Silver", "White", "Blue"}
)

// DefaultCategories returns the storefront categories. Product counts are
// filled in by the Store.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "laptops", Name: "Laptops", Description: "High-performance laptops for work and play", Icon: "💻"},
		{ID: "smartphones", Name: "Smartphones", Description: "Latest smartphones with cutting-edge features", Icon: "📱"},
		{ID: "tablets", Name: "Tablets", Description: "Tablets for productivity and entertainment", Icon: "📟"},
		{ID: "monitors", Name: "Monitors", Description: "High-resolution monitors for professionals", Icon: "🖥️"},
		{ID: "headphones", Name: "Headphones", Description: "Premium audio experience", Icon: "🎧"},
		{ID: "keyboards", Name: "Keyboards", Description: "Mechanical and membrane keyboards", Icon: "⌨️"},
		{ID: "mice", Name: "Mice", Description: "Gaming and productivity mice", Icon: "🖱️"},
		{ID: "speakers", Name: "Speakers", Description: "Bluetooth and wired speakers", Icon: "🔊"},
		{ID: "smartwatches", Name: "Smartwatches", Description: "Fitness and smart watches", Icon: "⌚"},
		{ID: "cameras", Name: "Cameras", Description: "DSLR and mirrorless cameras", Icon: "📷"},
	}
}

// NewRand returns a PCG-backed source. A zero seed is replaced by the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewGenerator returns a Generator producing size mock products with the
// default category list. Equal non-zero seeds produce equal catalogs apart
// from CreatedAt, which is relative to the time of generation.
func NewGenerator(size int, seed uint64) Generator {
	return NewGeneratorAt(size, seed, time.Now)
}

// NewGeneratorAt is NewGenerator with CreatedAt measured back from now().
// Equal non-zero seeds and equal clock readings produce identical catalogs.
func NewGeneratorAt(size int, seed uint64, now func() time.Time) Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return func() ([]models.Product, []models.Category) {
		r := NewRand(seed)
		categories := DefaultCategories()
		at := now()

		products := make([]models.Product, 0, size)
		for i := 0; i < size; i++ {
			products = append(products, generateProduct(r, i, categories, at))
		}
		return products, categories
	}
}

// FixedGenerator returns a Generator that serves the given collections as-is.
func FixedGenerator(products []models.Product, categories []models.Category) Generator {
	return func() ([]models.Product, []models.Category) {
		return products, categories
	}
}

func generateProduct(r *rand.Rand, index int, categories []models.Category, now time.Time) models.Product {
	brand := brands[r.IntN(len(brands))]
	category := categories[r.IntN(len(categories))].Name
	price := float64(r.IntN(50000) + 5000)

	var originalPrice *float64
	if r.Float64() > 0.7 {
		op := math.Round(price*1.3*100) / 100
		originalPrice = &op
	}

	model := index + 1000
	p := models.Product{
		ID:            fmt.Sprintf("product-%d", index+1),
		Name:          fmt.Sprintf("%s %s %d", brand, category[:len(category)-1], model),
		Description:   fmt.Sprintf("High-performance %s from %s with premium features and excellent build quality.", strings.ToLower(category), brand),
		Category:      category,
		Brand:         brand,
		Tags:          []string{strings.ToLower(brand), strings.ToLower(category), "tech", "electronics"},
		Image:         fmt.Sprintf("https://images.unsplash.com/photo-%d?auto=format&fit=crop&w=800", 1500000+index),
		Price:         price,
		OriginalPrice: originalPrice,
		Rating:        math.Round((r.Float64()*3+2)*10) / 10,
		ReviewCount:   r.IntN(1000),
		Stock:         r.IntN(100),
		SoldToday:     r.IntN(50),
		Specifications: map[string]string{
			"brand":    brand,
			"model":    fmt.Sprintf("MOD-%d", model),
			"color":    colors[r.IntN(len(colors))],
			"weight":   fmt.Sprintf("%.1f kg", r.Float64()*2+0.5),
			"warranty": "1 Year",
		},
		Delivery: models.Delivery{
			Free:          r.Float64() > 0.3,
			EstimatedDays: r.IntN(7) + 1,
			ReturnPeriod:  30,
		},
	}
	p.IsFeatured = r.Float64() > 0.7
	p.IsHot = r.Float64() > 0.8
	p.IsNew = r.Float64() > 0.6
	p.CreatedAt = now.Add(-time.Duration(r.Float64()*1e10) * time.Millisecond)
	return p
}
