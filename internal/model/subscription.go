package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription Status
type SubscriptionStatus string

const (
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
)

// Subscription holds one billing record per user. user_id carries a unique
// index so webhook writes can run as ON CONFLICT upserts.
type Subscription struct {
	gorm.Model
	UserID   uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	PlanType string             `json:"plan_type" gorm:"not null"`
	Status   SubscriptionStatus `json:"status" gorm:"default:'active'"`
	StartsAt time.Time          `json:"starts_at"`
	EndsAt   time.Time          `json:"ends_at"`
	Price    float64            `json:"price"`

	StripeCustomerID string `json:"stripe_customer_id"`
	StripeSubID      string `json:"stripe_subscription_id"`

	// LastEventAt is the created timestamp of the newest webhook event
	// applied to this row. Older events must not overwrite newer state.
	LastEventAt time.Time `json:"last_event_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive && s.EndsAt.After(time.Now())
}
