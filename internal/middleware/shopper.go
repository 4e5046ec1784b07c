package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
)

// ShopperHeader carries the opaque id that scopes a shopper's lists.
const ShopperHeader = "X-Shopper-ID"

// ShopperLocal is the fiber.Ctx Locals key holding the shopper id.
const ShopperLocal = "shopper_id"

var shopperIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ShopperRequired is a Fiber middleware that requires a valid shopper id header.
func ShopperRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopperID := c.Get(ShopperHeader)
		if shopperID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": ShopperHeader + " header is required",
			})
		}
		if !shopperIDPattern.MatchString(shopperID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": ShopperHeader + " must be 1-64 letters, digits, '-' or '_'",
			})
		}

		c.Locals(ShopperLocal, shopperID)
		return c.Next()
	}
}

// ShopperOptional stores the shopper id when a valid header is present and
// continues either way.
func ShopperOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if shopperID := c.Get(ShopperHeader); shopperIDPattern.MatchString(shopperID) {
			c.Locals(ShopperLocal, shopperID)
		}
		return c.Next()
	}
}

// ShopperID returns the shopper id stored by ShopperRequired or ShopperOptional.
func ShopperID(c *fiber.Ctx) (string, bool) {
	shopperID, ok := c.Locals(ShopperLocal).(string)
	return shopperID, ok && shopperID != ""
}
