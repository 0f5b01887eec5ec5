package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ridepool_backend/pkg/utils/jwt"
)

// GateConfig drives SessionGate. PublicPaths are matched as prefixes;
// AuthPages are the sign-in/sign-up pages a signed-in user gets bounced off.
type GateConfig struct {
	PublicPaths  []string
	AuthPages    []string
	SignInURL    string
	DashboardURL string
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// SessionGate enforces session-gated routing: unauthenticated access to a
// non-public path redirects to sign-in, while an authenticated user hitting
// an auth page is sent to the dashboard.
func SessionGate(cfg GateConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		_, err := jwt.ValidateToken(tokenFromRequest(c))
		authenticated := err == nil && tokenFromRequest(c) != ""

		if authenticated && matchesAny(path, cfg.AuthPages) {
			return c.Redirect(cfg.DashboardURL, fiber.StatusSeeOther)
		}

		if matchesAny(path, cfg.PublicPaths) {
			return c.Next()
		}

		if !authenticated {
			return c.Redirect(cfg.SignInURL, fiber.StatusSeeOther)
		}

		return c.Next()
	}
}
