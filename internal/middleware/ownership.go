package middleware

import (
	"github.com/gofiber/fiber/v2"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
	"ridepool_backend/pkg/utils/jwt"
)

// CheckRouteOwnership rejects mutations on routes the caller does not own.
func CheckRouteOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		routeID := c.Params("id")

		var route model.Route
		if err := database.DB.First(&route, routeID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Route not found",
			})
		}

		if route.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this route",
			})
		}

		return c.Next()
	}
}
