package handlers

import (
	"context"

	"techmart/internal/middleware"
	"techmart/internal/models"
	"techmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const maxRailLimit = 100

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products", middleware.ShopperOptional())
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/search", h.HandleSearch)
	productRoutes.Get("/trending", h.railHandler(h.service.TrendingProducts))
	productRoutes.Get("/featured", h.railHandler(h.service.FeaturedProducts))
	productRoutes.Get("/new-arrivals", h.railHandler(h.service.NewArrivals))
	productRoutes.Get("/best-sellers", h.railHandler(h.service.BestSellers))
	productRoutes.Get("/on-sale", h.railHandler(h.service.ProductsOnSale))
	productRoutes.Get("/stats", h.HandleGetStats)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Get("/:id/related", h.HandleGetRelated)
	productRoutes.Get("/:id/stock", h.HandleCheckStock)
	productRoutes.Get("/:id/specifications", h.HandleGetSpecifications)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id/products", h.HandleGetProductsByCategory)

	router.Get("/home", h.HandleGetHome)
}

// HandleGetProducts runs a filtered, sorted and paginated catalog query.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	spec, ok, err := parseFilterSpec(c, h.validate)
	if !ok {
		return err
	}
	page, err := h.service.FetchProducts(c.UserContext(), spec)
	if err != nil {
		return respondError(c, "retrieve products", err)
	}
	return c.JSON(page)
}

// HandleSearch is the type-ahead search.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	limit, ok, err := queryLimit(c, 10)
	if !ok {
		return err
	}
	results, err := h.service.Search(c.UserContext(), c.Query("q"), limit)
	if err != nil {
		return respondError(c, "search products", err)
	}
	return c.JSON(results)
}

// HandleGetStats returns catalog statistics.
func (h *ProductHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.ProductStats(c.UserContext())
	if err != nil {
		return respondError(c, "retrieve product statistics", err)
	}
	return c.JSON(stats)
}

// HandleGetProductByID returns one product. When the request names a
// shopper, the view is added to that shopper's recently viewed list.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.scoped(c).FetchProductByID(c.UserContext(), productID)
	if err != nil {
		return respondError(c, "retrieve product", err)
	}
	return c.JSON(product)
}

// HandleGetRelated returns products related to the given one.
func (h *ProductHandler) HandleGetRelated(c *fiber.Ctx) error {
	limit, ok, err := queryLimit(c, 4)
	if !ok {
		return err
	}
	related, err := h.service.RelatedProducts(c.UserContext(), c.Params("id"), limit)
	if err != nil {
		return respondError(c, "retrieve related products", err)
	}
	return c.JSON(related)
}

// HandleCheckStock reports availability for a quantity.
func (h *ProductHandler) HandleCheckStock(c *fiber.Ctx) error {
	quantity := c.QueryInt("quantity", 1)
	if quantity < 1 {
		return badRequest(c, "quantity must be a positive integer", nil)
	}
	status, err := h.service.CheckStock(c.UserContext(), c.Params("id"), quantity)
	if err != nil {
		return respondError(c, "check stock", err)
	}
	return c.JSON(status)
}

// HandleGetSpecifications returns a product's specifications.
func (h *ProductHandler) HandleGetSpecifications(c *fiber.Ctx) error {
	specs, err := h.service.Specifications(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "retrieve specifications", err)
	}
	return c.JSON(specs)
}

// HandleGetCategories returns all categories.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return respondError(c, "retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetProductsByCategory runs the listing query within one category.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	spec, ok, err := parseFilterSpec(c, h.validate)
	if !ok {
		return err
	}
	page, err := h.service.ProductsByCategory(c.UserContext(), c.Params("id"), spec)
	if err != nil {
		return respondError(c, "retrieve category products", err)
	}
	return c.JSON(page)
}

// HandleGetHome returns the home page rails.
func (h *ProductHandler) HandleGetHome(c *fiber.Ctx) error {
	feed, err := h.service.HomeFeed(c.UserContext())
	if err != nil {
		return respondError(c, "retrieve home feed", err)
	}
	return c.JSON(feed)
}

func (h *ProductHandler) railHandler(fetch func(context.Context, int) ([]models.Product, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok, err := queryLimit(c, 8)
		if !ok {
			return err
		}
		products, err := fetch(c.UserContext(), limit)
		if err != nil {
			return respondError(c, "retrieve products", err)
		}
		return c.JSON(products)
	}
}

func (h *ProductHandler) scoped(c *fiber.Ctx) *services.ProductService {
	if shopperID, ok := middleware.ShopperID(c); ok {
		return h.service.ForShopper(shopperID)
	}
	return h.service
}

// queryLimit reads the optional limit parameter. On failure the 400 response
// has already been written and ok is false.
func queryLimit(c *fiber.Ctx, fallback int) (limit int, ok bool, err error) {
	limit = c.QueryInt("limit", fallback)
	if limit < 1 || limit > maxRailLimit {
		return 0, false, badRequest(c, "limit must be between 1 and 100", nil)
	}
	return limit, true, nil
}
