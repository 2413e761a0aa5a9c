package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

// nationalParkType is the vocabulary entry that triggers the landmark
// cross-check.
const nationalParkType = "National Park"

// TypeValidator reconciles a declared location type against the controlled
// vocabulary and, for national parks, cross-checks the location name against
// the reference catalog. Both the import pipelines and the location
// create/update path share this one implementation.
type TypeValidator struct {
	types ports.LocationTypeRepository
	parks ports.ParkRepository
}

func NewTypeValidator(types ports.LocationTypeRepository, parks ports.ParkRepository) *TypeValidator {
	return &TypeValidator{types: types, parks: parks}
}

// ValidateAndNormalize returns the canonical vocabulary name for declaredType.
// Errors wrap domain.ErrTypeRequired, domain.ErrUnknownType, or
// domain.ErrParkNotFound.
func (v *TypeValidator) ValidateAndNormalize(ctx context.Context, declaredType, locationName string) (string, error) {
	if strings.TrimSpace(declaredType) == "" {
		return "", domain.ErrTypeRequired
	}

	trimmed := strings.TrimSpace(declaredType)
	entry, err := v.types.GetByName(ctx, trimmed)
	if err != nil {
		if !errors.Is(err, domain.ErrLocationTypeNotFound) {
			return "", fmt.Errorf("look up location type: %w", err)
		}
		valid, listErr := v.types.GetAll(ctx)
		if listErr != nil {
			return "", fmt.Errorf("list location types: %w", listErr)
		}
		names := make([]string, 0, len(valid))
		for _, t := range valid {
			names = append(names, t.Name)
		}
		return "", fmt.Errorf("%w '%s'. Valid types are: %s",
			domain.ErrUnknownType, trimmed, strings.Join(names, ", "))
	}

	if strings.EqualFold(entry.Name, nationalParkType) {
		if err := v.checkParkName(ctx, locationName); err != nil {
			return "", err
		}
	}

	return entry.Name, nil
}

// checkParkName requires at least one catalog entry whose name contains
// locationName or is contained by it, case-insensitively. "Yellowstone"
// matches "Yellowstone National Park" and vice versa.
func (v *TypeValidator) checkParkName(ctx context.Context, locationName string) error {
	parks, err := v.parks.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list national parks: %w", err)
	}

	lowerName := strings.ToLower(locationName)
	for _, park := range parks {
		lowerPark := strings.ToLower(park.Name)
		if strings.Contains(lowerPark, lowerName) || strings.Contains(lowerName, lowerPark) {
			return nil
		}
	}

	return fmt.Errorf("%w: National Park '%s' is not in the national parks catalog. Please verify the park name",
		domain.ErrParkNotFound, locationName)
}
