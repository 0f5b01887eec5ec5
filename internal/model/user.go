package model

import (
	"strings"

	"gorm.io/gorm"
)

// User Types
type UserType string

const (
	UserTypeCommon   UserType = "common_user"
	UserTypeCarOwner UserType = "car_owner"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Username string `gorm:"uniqueIndex;not null"`

	// Profile fields, filled in from settings after signup
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	City         string `json:"city"`
	VehicleType  string `json:"vehicle_type"`
	Avatar       string `json:"avatar"`
	VehiclePhoto string `json:"vehicle_photo"`

	UserType        UserType `json:"user_type" gorm:"default:'common_user'"`
	ProfileComplete bool     `json:"profile_complete" gorm:"default:false"`

	Routes       []Route       `json:"-"`
	Subscription *Subscription `json:"-"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsProfileComplete reports whether all required profile fields are filled.
// Car owners additionally need a vehicle type before publishing routes.
func (u *User) IsProfileComplete() bool {
	required := []string{u.FirstName, u.LastName, u.PhoneNumber, u.Address, u.City}
	if u.UserType == UserTypeCarOwner {
		required = append(required, u.VehicleType)
	}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":               u.ID,
		"username":         u.Username,
		"full_name":        u.GetFullName(),
		"phone_number":     u.PhoneNumber,
		"city":             u.City,
		"vehicle_type":     u.VehicleType,
		"avatar":           u.Avatar,
		"user_type":        u.UserType,
		"profile_complete": u.ProfileComplete,
	}
}
