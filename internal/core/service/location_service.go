package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// LocationService handles the travel-log CRUD surface. Create and Update run
// the same TypeValidator instance the import pipelines use, so the
// type/landmark rules cannot drift between the two call sites.
type LocationService struct {
	repo      ports.LocationRepository
	validator *TypeValidator
	log       zerolog.Logger
}

func NewLocationService(repo ports.LocationRepository, validator *TypeValidator, log zerolog.Logger) *LocationService {
	return &LocationService{repo: repo, validator: validator, log: log}
}

func (s *LocationService) Get(ctx context.Context, id, userID string) (*domain.Location, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *LocationService) List(ctx context.Context, userID string) ([]*domain.Location, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *LocationService) ListByState(ctx context.Context, userID, state string) ([]*domain.Location, error) {
	return s.repo.ListByState(ctx, userID, state)
}

func (s *LocationService) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Location, error) {
	return s.repo.ListByDateRange(ctx, userID, from, to)
}

// CountByState aggregates the user's locations per state code.
func (s *LocationService) CountByState(ctx context.Context, userID string) (map[string]int, error) {
	locations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, loc := range locations {
		counts[loc.State]++
	}
	return counts, nil
}

func (s *LocationService) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	normalized, err := s.validator.ValidateAndNormalize(ctx, loc.LocationType, loc.Name)
	if err != nil {
		return nil, err
	}
	loc.LocationType = normalized

	now := time.Now().UTC()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	if loc.Tags == nil {
		loc.Tags = []string{}
	}

	created, err := s.repo.Create(ctx, loc)
	if err != nil {
		s.log.Error().Err(err).Str("name", loc.Name).Msg("failed to create location")
		return nil, fmt.Errorf("create location: %w", err)
	}
	return created, nil
}

func (s *LocationService) Update(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	normalized, err := s.validator.ValidateAndNormalize(ctx, loc.LocationType, loc.Name)
	if err != nil {
		return nil, err
	}
	loc.LocationType = normalized
	loc.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}
	return updated, nil
}

func (s *LocationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
