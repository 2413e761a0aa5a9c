package ports

import (
	"context"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// LocationTypeRepository exposes the controlled vocabulary of valid location
// types. Read-only from the core's perspective.
type LocationTypeRepository interface {
	GetAll(ctx context.Context) ([]domain.LocationType, error)
	// GetByName looks a type up by exact canonical name. Returns
	// domain.ErrLocationTypeNotFound when no entry matches.
	GetByName(ctx context.Context, name string) (*domain.LocationType, error)
}
