package domain

import (
	"errors"
	"time"
)

var ErrLocationNotFound = errors.New("location not found")
var ErrForbidden = errors.New("access forbidden")

// Validation errors raised by the shared type/landmark check. They are wrapped
// with record-specific detail at the point of failure; callers classify with
// errors.Is.
var ErrTypeRequired = errors.New("location type is required")
var ErrUnknownType = errors.New("invalid location type")
var ErrParkNotFound = errors.New("national park not found")

// Location is one visited place in a user's travel log.
type Location struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	UserID       string     `json:"userId" bson:"user_id"`
	Name         string     `json:"name" bson:"name"`
	TripName     string     `json:"tripName" bson:"trip_name"`
	LocationType string     `json:"locationType" bson:"location_type"`
	Address      string     `json:"address" bson:"address"`
	City         string     `json:"city" bson:"city"`
	State        string     `json:"state" bson:"state"`
	ZipCode      string     `json:"zipCode" bson:"zip_code"`
	Latitude     float64    `json:"latitude" bson:"latitude"`
	Longitude    float64    `json:"longitude" bson:"longitude"`
	StartDate    time.Time  `json:"startDate" bson:"start_date"`
	EndDate      *time.Time `json:"endDate,omitempty" bson:"end_date,omitempty"`
	Rating       int        `json:"rating" bson:"rating"`
	Comments     string     `json:"comments" bson:"comments"`
	Tags         []string   `json:"tags" bson:"tags"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`
}
