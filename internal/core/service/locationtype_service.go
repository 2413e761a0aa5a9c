package service

import (
	"context"
	"errors"
	"strings"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// LocationTypeService exposes the controlled vocabulary to the API surface.
type LocationTypeService struct {
	repo ports.LocationTypeRepository
}

func NewLocationTypeService(repo ports.LocationTypeRepository) *LocationTypeService {
	return &LocationTypeService{repo: repo}
}

func (s *LocationTypeService) ListTypes(ctx context.Context) ([]domain.LocationType, error) {
	return s.repo.GetAll(ctx)
}

func (s *LocationTypeService) GetTypeByName(ctx context.Context, name string) (*domain.LocationType, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *LocationTypeService) IsValidType(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, nil
	}
	_, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrLocationTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
