package model

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var weekdayNames = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// ValidWeekdays reports whether every entry is a lowercase weekday name.
func ValidWeekdays(days []string) bool {
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if !weekdayNames[d] {
			return false
		}
	}
	return true
}

type Route struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_user_route_slug;not null"`

	PickupAddress  string  `json:"pickup_address" gorm:"not null"`
	DropoffAddress string  `json:"dropoff_address" gorm:"not null"`
	PickupLat      float64 `json:"pickup_lat" gorm:"not null"`
	PickupLng      float64 `json:"pickup_lng" gorm:"not null"`
	DropoffLat     float64 `json:"dropoff_lat" gorm:"not null"`
	DropoffLng     float64 `json:"dropoff_lng" gorm:"not null"`

	DepartureTime  string         `json:"departure_time" gorm:"not null"` // "07:30"
	Weekdays       datatypes.JSON `json:"weekdays" gorm:"not null"`       // ["monday", ...]
	SeatsAvailable int            `json:"seats_available" gorm:"not null"`
	PricePerSeat   float64        `json:"price_per_seat" gorm:"not null"`

	Slug     string `json:"slug" gorm:"uniqueIndex:idx_user_route_slug;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	User     User           `json:"-" gorm:"foreignKey:UserID"`
	Requests []RouteRequest `json:"-" gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// CanAccommodate reports whether the route still has room for the
// requested number of seats.
func (r *Route) CanAccommodate(seats int) bool {
	return seats >= 1 && seats <= r.SeatsAvailable
}

// BeforeCreate derives a slug from the endpoint addresses when none is set.
// A repeat of the same endpoints by the same user gets a random suffix so the
// (user_id, slug) unique index holds.
func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.Slug == "" {
		base := slug.Make(r.PickupAddress + " to " + r.DropoffAddress)

		var count int64
		tx.Model(&Route{}).Where("user_id = ? AND slug = ?", r.UserID, base).Count(&count)
		if count > 0 {
			base = base + "-" + uuid.New().String()[:8]
		}

		r.Slug = base
	}
	return nil
}
