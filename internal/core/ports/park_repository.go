package ports

import (
	"context"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// ParkRepository exposes the reference catalog of known national parks.
// Read-only from the core's perspective.
type ParkRepository interface {
	GetAll(ctx context.Context) ([]domain.NationalPark, error)
	GetByState(ctx context.Context, state string) ([]domain.NationalPark, error)
}
