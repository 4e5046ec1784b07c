package handlers

import (
	"techmart/internal/models"
	"techmart/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleGetReviews)
	router.Post("/products/:id/reviews", h.HandleCreateReview)
}

// HandleGetReviews returns a page of a product's reviews.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 || limit < 1 || limit > 100 {
		return badRequest(c, "page must be positive and limit between 1 and 100", nil)
	}

	reviews, err := h.service.ProductReviews(c.UserContext(), c.Params("id"), page, limit)
	if err != nil {
		return respondError(c, "retrieve reviews", err)
	}
	return c.JSON(reviews)
}

// HandleCreateReview adds a review to a product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var input models.NewReview
	if err := c.BodyParser(&input); err != nil {
		zap.L().Debug("Error parsing review body", zap.Error(err))
		return badRequest(c, "Invalid request body", err)
	}

	review, err := h.service.AddReview(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return respondError(c, "create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
