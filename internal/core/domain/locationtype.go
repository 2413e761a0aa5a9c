package domain

import "errors"

var ErrLocationTypeNotFound = errors.New("location type not found")

// LocationType is one entry of the controlled vocabulary of valid location
// kinds ("National Park", "RV Park", "Hotel", ...). Name is the canonical key.
type LocationType struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}
