package ports

import (
	"context"
	"time"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// LocationRepository defines persistence operations for travel-log locations.
// Every query is scoped to the owning user.
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Location, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Location, error)
	ListByState(ctx context.Context, userID, state string) ([]*domain.Location, error)
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Location, error)
	Update(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	Delete(ctx context.Context, id, userID string) error
}
