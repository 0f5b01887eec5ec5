package middleware

import (
	"github.com/gofiber/fiber/v2"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
	"ridepool_backend/pkg/utils/jwt"
)

// RequireActiveSubscription gates route publishing behind a live
// subscription. Expiry is checked against the period end, not just the
// status flag, so a missed webhook cannot leave a lapsed user publishing.
func RequireActiveSubscription() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		var sub model.Subscription
		if err := database.DB.
			Where("user_id = ? AND status = ?", claims.UserID, model.SubscriptionStatusActive).
			First(&sub).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "An active subscription is required to publish routes",
			})
		}

		if !sub.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Your subscription has expired",
				"ends_at": sub.EndsAt,
				"plan":    sub.PlanType,
			})
		}

		return c.Next()
	}
}
