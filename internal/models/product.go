package models

import (
	"math"
	"time"
)

// Delivery describes how a product ships.
type Delivery struct {
	Free          bool `json:"free"`
	EstimatedDays int  `json:"estimatedDays"`
	ReturnPeriod  int  `json:"returnPeriod"`
}

// Product represents a product in the store catalog.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	Tags           []string          `json:"tags"`
	Image          string            `json:"image"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"originalPrice,omitempty"` // nil or >= Price
	Stock          int               `json:"stock"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	IsNew          bool              `json:"isNew"`
	IsHot          bool              `json:"isHot"`
	IsFeatured     bool              `json:"isFeatured"`
	SoldToday      int               `json:"soldToday"`
	Specifications map[string]string `json:"specifications"`
	Delivery       Delivery          `json:"delivery"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// DiscountFraction returns (originalPrice - price) / originalPrice, or 0 when the
// product has no usable original price.
func (p Product) DiscountFraction() float64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return 0
	}
	return (*p.OriginalPrice - p.Price) / *p.OriginalPrice
}

// DiscountPercent is DiscountFraction rounded to a whole percentage.
func (p Product) DiscountPercent() int {
	return int(math.Round(p.DiscountFraction() * 100))
}

// OnSale reports whether the product is priced below its original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// Category is a browseable product category.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	ProductCount int    `json:"productCount"`
}

// StockStatus is the answer to a stock check for a requested quantity.
type StockStatus struct {
	InStock           bool `json:"inStock"`
	AvailableQuantity int  `json:"availableQuantity"`
}

// HomeFeed groups the product rails shown on the storefront home page.
type HomeFeed struct {
	Featured    []Product `json:"featured"`
	Trending    []Product `json:"trending"`
	NewArrivals []Product `json:"newArrivals"`
	BestSellers []Product `json:"bestSellers"`
	OnSale      []Product `json:"onSale"`
}
