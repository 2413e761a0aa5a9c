package handler

import (
	"fmt"
	"time"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// --- Request / Response types ---

type locationRequest struct {
	Name         string   `json:"name"         validate:"required"`
	TripName     string   `json:"tripName"`
	LocationType string   `json:"locationType" validate:"required"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zipCode"`
	Latitude     float64  `json:"latitude"     validate:"latitude"`
	Longitude    float64  `json:"longitude"    validate:"longitude"`
	StartDate    string   `json:"startDate"    validate:"required"`
	EndDate      string   `json:"endDate"`
	Rating       int      `json:"rating"       validate:"omitempty,gte=1,lte=5"`
	Comments     string   `json:"comments"`
	Tags         []string `json:"tags"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type locationResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TripName     string   `json:"tripName,omitempty"`
	LocationType string   `json:"locationType"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	ZipCode      string   `json:"zipCode,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Rating       int      `json:"rating"`
	Comments     string   `json:"comments,omitempty"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

type locationListResponse struct {
	Total int                `json:"total"`
	Data  []locationResponse `json:"data"`
}

type stateCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

const requestDateLayout = "2006-01-02"

// parseRequestDate accepts both plain dates and full RFC 3339 timestamps.
func parseRequestDate(value string) (time.Time, error) {
	if t, err := time.Parse(requestDateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date value: %s", value)
}

func toLocationResponse(loc *domain.Location) locationResponse {
	resp := locationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		TripName:     loc.TripName,
		LocationType: loc.LocationType,
		Address:      loc.Address,
		City:         loc.City,
		State:        loc.State,
		ZipCode:      loc.ZipCode,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		StartDate:    loc.StartDate.UTC().Format(requestDateLayout),
		Rating:       loc.Rating,
		Comments:     loc.Comments,
		Tags:         loc.Tags,
		CreatedAt:    loc.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    loc.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if loc.EndDate != nil {
		end := loc.EndDate.UTC().Format(requestDateLayout)
		resp.EndDate = &end
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

func toLocationListResponse(locations []*domain.Location) locationListResponse {
	items := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		items = append(items, toLocationResponse(loc))
	}
	return locationListResponse{Total: len(items), Data: items}
}
