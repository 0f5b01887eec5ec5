package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ridepool_backend/pkg/utils/jwt"
)

// SessionCookie is the cookie the web client stores its token in.
const SessionCookie = "session"

// tokenFromRequest pulls the session token from the Authorization header
// or, failing that, the session cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return c.Cookies(SessionCookie)
}

// AuthMiddleware rejects requests without a valid session token and stores
// the parsed claims in Locals("user").
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
