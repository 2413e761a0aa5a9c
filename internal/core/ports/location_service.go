package ports

import (
	"context"
	"time"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// LocationService is the CRUD surface for a user's travel log. Create and
// Update run the same type/landmark validation the import pipelines use.
type LocationService interface {
	Get(ctx context.Context, id, userID string) (*domain.Location, error)
	List(ctx context.Context, userID string) ([]*domain.Location, error)
	ListByState(ctx context.Context, userID, state string) ([]*domain.Location, error)
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Location, error)
	CountByState(ctx context.Context, userID string) (map[string]int, error)
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	Update(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	Delete(ctx context.Context, id, userID string) error
}

// ParkService answers questions about the national-park catalog and a user's
// visited parks.
type ParkService interface {
	ListParks(ctx context.Context) ([]domain.NationalPark, error)
	ListParksByState(ctx context.Context, state string) ([]domain.NationalPark, error)
	// ListVisitedParks cross-joins a user's "National Park" locations against
	// the catalog using a two-way case-insensitive substring match on names.
	ListVisitedParks(ctx context.Context, userID string) ([]domain.NationalPark, error)
}

// LocationTypeService exposes the controlled vocabulary.
type LocationTypeService interface {
	ListTypes(ctx context.Context) ([]domain.LocationType, error)
	GetTypeByName(ctx context.Context, name string) (*domain.LocationType, error)
	IsValidType(ctx context.Context, name string) (bool, error)
}
