package model

import (
	"path/filepath"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCanAccommodate(t *testing.T) {
	route := Route{SeatsAvailable: 3}

	tests := []struct {
		name  string
		seats int
		want  bool
	}{
		{"one seat", 1, true},
		{"exactly the capacity", 3, true},
		{"one over capacity", 4, false},
		{"zero seats", 0, false},
		{"negative seats", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := route.CanAccommodate(tt.seats); got != tt.want {
				t.Errorf("CanAccommodate(%d) = %v, want %v", tt.seats, got, tt.want)
			}
		})
	}
}

func TestValidWeekdays(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want bool
	}{
		{"weekday subset", []string{"monday", "wednesday", "friday"}, true},
		{"full week", []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}, true},
		{"empty list", []string{}, false},
		{"capitalized name", []string{"Monday"}, false},
		{"unknown day", []string{"funday"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidWeekdays(tt.days); got != tt.want {
				t.Errorf("ValidWeekdays(%v) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestRouteSlugDisambiguation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "routes.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Route{}, &RouteRequest{}); err != nil {
		t.Fatalf("could not migrate: %v", err)
	}

	user := User{Email: "driver@example.com", Password: "hashed", Username: "driver"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("could not create user: %v", err)
	}

	newRoute := func() Route {
		return Route{
			UserID:         user.ID,
			PickupAddress:  "DHA Phase 5",
			DropoffAddress: "Clifton Block 2",
			PickupLat:      24.8040,
			PickupLng:      67.0590,
			DropoffLat:     24.8138,
			DropoffLng:     67.0300,
			DepartureTime:  "07:30",
			Weekdays:       datatypes.JSON([]byte(`["monday"]`)),
			SeatsAvailable: 3,
			PricePerSeat:   250,
			IsActive:       true,
		}
	}

	// Same endpoints three times over; the (user_id, slug) index must hold.
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		route := newRoute()
		if err := db.Create(&route).Error; err != nil {
			t.Fatalf("create #%d: %v", i+1, err)
		}
		if seen[route.Slug] {
			t.Fatalf("create #%d reused slug %q", i+1, route.Slug)
		}
		seen[route.Slug] = true
	}

	if !seen["dha-phase-5-to-clifton-block-2"] {
		t.Errorf("first route should carry the plain address slug, got %v", seen)
	}
}
