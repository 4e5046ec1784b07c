package handlers

import (
	"techmart/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves the lookup tables behind the sort and price filter controls.
type MetaHandler struct{}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// RegisterRoutes registers the meta routes with the Fiber app.
func (h *MetaHandler) RegisterRoutes(router fiber.Router) {
	meta := router.Group("/meta")
	meta.Get("/sort-options", func(c *fiber.Ctx) error {
		return c.JSON(models.SortOptions)
	})
	meta.Get("/price-ranges", func(c *fiber.Ctx) error {
		return c.JSON(models.PriceRanges)
	})
}
