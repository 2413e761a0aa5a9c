package domain

// NationalPark is one entry of the reference catalog used to cross-validate
// user-entered "National Park" locations.
type NationalPark struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	State       string  `json:"state" bson:"state"`
	Latitude    float64 `json:"latitude" bson:"latitude"`
	Longitude   float64 `json:"longitude" bson:"longitude"`
	Description string  `json:"description" bson:"description"`
}
