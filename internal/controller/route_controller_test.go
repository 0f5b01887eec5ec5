package controller

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"ridepool_backend/internal/model"
)

func TestGetRouteByIDAndSlug(t *testing.T) {
	db := setupTestDB(t)

	user := model.User{Email: "driver@example.com", Password: "hashed", Username: "driver"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("could not create user: %v", err)
	}

	route := model.Route{
		UserID:         user.ID,
		PickupAddress:  "DHA Phase 5",
		DropoffAddress: "Clifton Block 2",
		PickupLat:      24.8040,
		PickupLng:      67.0590,
		DropoffLat:     24.8138,
		DropoffLng:     67.0300,
		DepartureTime:  "07:30",
		Weekdays:       datatypes.JSON([]byte(`["monday","wednesday"]`)),
		SeatsAvailable: 3,
		PricePerSeat:   250,
		IsActive:       true,
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("could not create route: %v", err)
	}
	if route.Slug != "dha-phase-5-to-clifton-block-2" {
		t.Fatalf("slug = %q, want %q", route.Slug, "dha-phase-5-to-clifton-block-2")
	}

	app := fiber.New()
	app.Get("/api/routes/:id", GetRoute)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"by numeric id", fmt.Sprintf("/api/routes/%d", route.ID), fiber.StatusOK},
		{"by slug", "/api/routes/" + route.Slug, fiber.StatusOK},
		{"unknown slug", "/api/routes/no-such-route", fiber.StatusNotFound},
		{"unknown id", "/api/routes/99999", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
