package service

import (
	"context"
	"strings"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// ParkService answers catalog queries and computes a user's visited parks.
type ParkService struct {
	parks     ports.ParkRepository
	locations ports.LocationRepository
}

func NewParkService(parks ports.ParkRepository, locations ports.LocationRepository) *ParkService {
	return &ParkService{parks: parks, locations: locations}
}

func (s *ParkService) ListParks(ctx context.Context) ([]domain.NationalPark, error) {
	return s.parks.GetAll(ctx)
}

func (s *ParkService) ListParksByState(ctx context.Context, state string) ([]domain.NationalPark, error) {
	return s.parks.GetByState(ctx, state)
}

// ListVisitedParks returns catalog parks matched by any of the user's
// "National Park" locations, using the same two-way substring predicate as
// the import-time landmark check.
func (s *ParkService) ListVisitedParks(ctx context.Context, userID string) ([]domain.NationalPark, error) {
	allParks, err := s.parks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.locations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var parkLocations []*domain.Location
	for _, loc := range locations {
		if strings.EqualFold(loc.LocationType, nationalParkType) {
			parkLocations = append(parkLocations, loc)
		}
	}

	visited := make([]domain.NationalPark, 0)
	for _, park := range allParks {
		lowerPark := strings.ToLower(park.Name)
		for _, loc := range parkLocations {
			lowerLoc := strings.ToLower(loc.Name)
			if strings.Contains(lowerPark, lowerLoc) || strings.Contains(lowerLoc, lowerPark) {
				visited = append(visited, park)
				break
			}
		}
	}
	return visited, nil
}
