package handlers

import (
	"strings"

	"techmart/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductQuery is the query string accepted by the product listing routes.
type ProductQuery struct {
	Category   string   `query:"category" validate:"omitempty,max=64"`
	Search     string   `query:"search" validate:"omitempty,max=200"`
	Q          string   `query:"q" validate:"omitempty,max=200"`
	Brands     string   `query:"brands"`
	PriceRange string   `query:"priceRange" validate:"omitempty,price_range"`
	MinRating  *float64 `query:"minRating" validate:"omitempty,min=0,max=5"`
	Features   string   `query:"features"`
	InStock    bool     `query:"inStock"`
	SortBy     string   `query:"sortBy" validate:"omitempty,sort_option"`
	Page       *int     `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit      *int     `query:"limit" validate:"omitempty,min=1,max=100"`
}

// newValidator returns a validator that knows the catalog's lookup tables.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("price_range", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		for _, r := range models.PriceRanges {
			if r.ID == id {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("sort_option", func(fl validator.FieldLevel) bool {
		return models.IsSupportedSort(fl.Field().String())
	})
	return v
}

// ToFilterSpec merges the query onto the default spec.
func (q ProductQuery) ToFilterSpec() models.FilterSpec {
	spec := models.DefaultFilterSpec()
	if q.Category != "" {
		spec.Category = q.Category
	}
	spec.Search = strings.TrimSpace(q.Search)
	if spec.Search == "" {
		spec.Search = strings.TrimSpace(q.Q)
	}
	spec.Brands = splitList(q.Brands)
	spec.PriceRangeID = q.PriceRange
	spec.MinRating = q.MinRating
	spec.Features = splitList(q.Features)
	spec.InStock = q.InStock
	if q.SortBy != "" {
		spec.SortBy = q.SortBy
	}
	if q.Page != nil {
		spec.Page = *q.Page
	}
	if q.Limit != nil {
		spec.Limit = *q.Limit
	}
	return spec
}

// parseFilterSpec reads and validates the listing query string. On failure
// the 400 response has already been written and ok is false.
func parseFilterSpec(c *fiber.Ctx, validate *validator.Validate) (spec models.FilterSpec, ok bool, err error) {
	var q ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return spec, false, badRequest(c, "Invalid query parameters", err)
	}
	if err := validate.Struct(q); err != nil {
		return spec, false, validationFailed(c, err)
	}
	return q.ToFilterSpec(), true, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
