package model

import "gorm.io/gorm"

// Request Status
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

type RouteRequest struct {
	gorm.Model
	UserID  uint          `json:"user_id" gorm:"uniqueIndex:idx_requester_route;not null"`
	RouteID uint          `json:"route_id" gorm:"uniqueIndex:idx_requester_route;not null"`
	Seats   int           `json:"seats" gorm:"not null"`
	Message string        `json:"message" gorm:"type:text"`
	Status  RequestStatus `json:"status" gorm:"default:'pending'"`

	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Route Route `json:"-" gorm:"foreignKey:RouteID"`
}
