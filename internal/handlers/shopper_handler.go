package handlers

import (
	"techmart/internal/middleware"
	"techmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ShopperHandler handles HTTP requests for a shopper's wishlist, compare
// list and recently viewed products.
type ShopperHandler struct {
	service *services.ProductService
}

// NewShopperHandler creates a new ShopperHandler.
func NewShopperHandler(service *services.ProductService) *ShopperHandler {
	return &ShopperHandler{
		service: service,
	}
}

// RegisterRoutes registers the shopper routes. All of them require the
// shopper id header.
func (h *ShopperHandler) RegisterRoutes(router fiber.Router) {
	// Group middleware matches by path prefix, which would also catch /meta,
	// so the header check is attached per route.
	me := router.Group("/me")
	required := middleware.ShopperRequired()

	me.Get("/wishlist", required, h.HandleGetWishlist)
	me.Get("/wishlist/:id", required, h.HandleIsInWishlist)
	me.Post("/wishlist/:id", required, h.HandleAddToWishlist)
	me.Delete("/wishlist/:id", required, h.HandleRemoveFromWishlist)

	me.Get("/compare", required, h.HandleGetCompare)
	me.Post("/compare/:id", required, h.HandleAddToCompare)
	me.Delete("/compare/:id", required, h.HandleRemoveFromCompare)

	me.Get("/recently-viewed", required, h.HandleGetRecentlyViewed)
}

func (h *ShopperHandler) shopper(c *fiber.Ctx) *services.ProductService {
	shopperID, _ := middleware.ShopperID(c)
	return h.service.ForShopper(shopperID)
}

// HandleGetWishlist returns the wishlist products.
func (h *ShopperHandler) HandleGetWishlist(c *fiber.Ctx) error {
	products, err := h.shopper(c).Wishlist(c.UserContext())
	if err != nil {
		return respondError(c, "retrieve wishlist", err)
	}
	return c.JSON(products)
}

// HandleIsInWishlist reports wishlist membership.
func (h *ShopperHandler) HandleIsInWishlist(c *fiber.Ctx) error {
	productID := c.Params("id")
	in, err := h.shopper(c).IsInWishlist(c.UserContext(), productID)
	if err != nil {
		return respondError(c, "check wishlist", err)
	}
	return c.JSON(fiber.Map{"productId": productID, "inWishlist": in})
}

// HandleAddToWishlist adds a product to the wishlist.
func (h *ShopperHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	if err := h.shopper(c).AddToWishlist(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, "add product to wishlist", err)
	}
	return c.JSON(fiber.Map{"message": "Product added to wishlist"})
}

// HandleRemoveFromWishlist removes a product from the wishlist.
func (h *ShopperHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	if err := h.shopper(c).RemoveFromWishlist(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, "remove product from wishlist", err)
	}
	return c.JSON(fiber.Map{"message": "Product removed from wishlist"})
}

// HandleGetCompare returns the compare list products.
func (h *ShopperHandler) HandleGetCompare(c *fiber.Ctx) error {
	products, err := h.shopper(c).CompareList(c.UserContext())
	if err != nil {
		return respondError(c, "retrieve compare list", err)
	}
	return c.JSON(products)
}

// HandleAddToCompare adds a product to the compare list. A full list is a conflict.
func (h *ShopperHandler) HandleAddToCompare(c *fiber.Ctx) error {
	added, err := h.shopper(c).AddToCompare(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, "add product to compare", err)
	}
	if !added {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Compare list is full",
		})
	}
	return c.JSON(fiber.Map{"message": "Product added to compare"})
}

// HandleRemoveFromCompare removes a product from the compare list.
func (h *ShopperHandler) HandleRemoveFromCompare(c *fiber.Ctx) error {
	if err := h.shopper(c).RemoveFromCompare(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, "remove product from compare", err)
	}
	return c.JSON(fiber.Map{"message": "Product removed from compare"})
}

// HandleGetRecentlyViewed returns recently viewed products, most recent first.
func (h *ShopperHandler) HandleGetRecentlyViewed(c *fiber.Ctx) error {
	limit, ok, err := queryLimit(c, 8)
	if !ok {
		return err
	}
	products, err := h.shopper(c).RecentlyViewed(c.UserContext(), limit)
	if err != nil {
		return respondError(c, "retrieve recently viewed products", err)
	}
	return c.JSON(products)
}
