package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"ridepool_backend/pkg/utils/jwt"
)

func newGatedApp() *fiber.App {
	app := fiber.New()
	app.Use(SessionGate(GateConfig{
		PublicPaths:  []string{"/api/auth", "/api/subscriptions/plans"},
		AuthPages:    []string{"/api/auth/login", "/api/auth/register"},
		SignInURL:    "/signin",
		DashboardURL: "/dashboard",
	}))

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Post("/api/auth/login", ok)
	app.Get("/api/subscriptions/plans", ok)
	app.Get("/api/routes/my", ok)
	return app
}

func TestGateRedirectsUnauthenticated(t *testing.T) {
	app := newGatedApp()

	req := httptest.NewRequest("GET", "/api/routes/my", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/signin" {
		t.Errorf("Location = %q, want /signin", loc)
	}
}

func TestGateAllowsPublicPaths(t *testing.T) {
	app := newGatedApp()

	req := httptest.NewRequest("GET", "/api/subscriptions/plans", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestGateBouncesAuthenticatedOffAuthPages(t *testing.T) {
	app := newGatedApp()

	token, err := jwt.GenerateToken(1, "rider@example.com", "common_user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("Cookie", SessionCookie+"="+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

func TestGateAllowsAuthenticatedPrivatePaths(t *testing.T) {
	app := newGatedApp()

	token, err := jwt.GenerateToken(1, "rider@example.com", "common_user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	req := httptest.NewRequest("GET", "/api/routes/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}
