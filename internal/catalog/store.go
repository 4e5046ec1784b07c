package catalog

import (
	"strings"
	"sync"

	"techmart/internal/models"
)

// Generator produces the full product and category collections for a Store.
type Generator func() ([]models.Product, []models.Category)

// Store holds the product catalog for the lifetime of the process.
// It is populated exactly once and is read-only afterwards, so readers
// share the same snapshot without locking.
type Store struct {
	gen        Generator
	once       sync.Once
	products   []models.Product
	categories []models.Category
}

// NewStore creates a Store that is populated from gen on first use.
func NewStore(gen Generator) *Store {
	return &Store{gen: gen}
}

// Initialize populates the store. Calls after the first are no-ops.
func (s *Store) Initialize() {
	s.once.Do(func() {
		products, categories := s.gen()
		if products == nil {
			products = []models.Product{}
		}
		s.products = products
		s.categories = withProductCounts(categories, products)
	})
}

// All returns the full product collection. Callers must not modify it.
func (s *Store) All() []models.Product {
	s.Initialize()
	return s.products
}

// Categories returns the category list with product counts.
func (s *Store) Categories() []models.Category {
	s.Initialize()
	return s.categories
}

// Find looks a product up by id.
func (s *Store) Find(id string) (models.Product, bool) {
	for _, p := range s.All() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func withProductCounts(categories []models.Category, products []models.Product) []models.Category {
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[strings.ToLower(p.Category)]++
	}
	out := make([]models.Category, len(categories))
	for i, c := range categories {
		c.ProductCount = counts[strings.ToLower(c.Name)]
		out[i] = c
	}
	return out
}
