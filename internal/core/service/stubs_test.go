package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub collaborators shared by the service tests
// ---------------------------------------------------------------------------

type stubLocationRepo struct {
	created   []*domain.Location
	createErr error // if set, Create returns this error
	failOn    string // if set, Create fails only for this location name
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{}
}

func (r *stubLocationRepo) Create(_ context.Context, loc *domain.Location) (*domain.Location, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if r.failOn != "" && loc.Name == r.failOn {
		return nil, fmt.Errorf("storage unavailable")
	}
	clone := *loc
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("loc-%d", len(r.created)+1)
	}
	r.created = append(r.created, &clone)
	return &clone, nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id, userID string) (*domain.Location, error) {
	for _, loc := range r.created {
		if loc.ID == id && loc.UserID == userID {
			clone := *loc
			return &clone, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

func (r *stubLocationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Location, error) {
	var out []*domain.Location
	for _, loc := range r.created {
		if loc.UserID == userID {
			clone := *loc
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubLocationRepo) ListByState(_ context.Context, userID, state string) ([]*domain.Location, error) {
	var out []*domain.Location
	for _, loc := range r.created {
		if loc.UserID == userID && strings.EqualFold(loc.State, state) {
			clone := *loc
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubLocationRepo) ListByDateRange(_ context.Context, userID string, from, to time.Time) ([]*domain.Location, error) {
	var out []*domain.Location
	for _, loc := range r.created {
		if loc.UserID == userID && !loc.StartDate.Before(from) && !loc.StartDate.After(to) {
			clone := *loc
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubLocationRepo) Update(_ context.Context, loc *domain.Location) (*domain.Location, error) {
	for i, existing := range r.created {
		if existing.ID == loc.ID && existing.UserID == loc.UserID {
			clone := *loc
			r.created[i] = &clone
			return &clone, nil
		}
	}
	return nil, domain.ErrLocationNotFound
}

func (r *stubLocationRepo) Delete(_ context.Context, id, userID string) error {
	for i, existing := range r.created {
		if existing.ID == id && existing.UserID == userID {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return domain.ErrLocationNotFound
}

type stubTypeRepo struct {
	types []domain.LocationType
	// acceptAll makes GetByName succeed for any name, echoing it back as the
	// canonical entry. Used by round-trip tests.
	acceptAll bool
}

func newStubTypeRepo() *stubTypeRepo {
	return &stubTypeRepo{types: []domain.LocationType{
		{Name: "National Park", Description: "U.S. national park"},
		{Name: "RV Park", Description: "RV park or campground"},
		{Name: "Hotel", Description: "Hotel or motel"},
		{Name: "Other", Description: "Anything else"},
	}}
}

func (r *stubTypeRepo) GetAll(_ context.Context) ([]domain.LocationType, error) {
	return r.types, nil
}

func (r *stubTypeRepo) GetByName(_ context.Context, name string) (*domain.LocationType, error) {
	if r.acceptAll {
		return &domain.LocationType{Name: name}, nil
	}
	for _, t := range r.types {
		if t.Name == name {
			entry := t
			return &entry, nil
		}
	}
	return nil, domain.ErrLocationTypeNotFound
}

type stubParkRepo struct {
	parks []domain.NationalPark
}

func newStubParkRepo() *stubParkRepo {
	return &stubParkRepo{parks: []domain.NationalPark{
		{Name: "Yellowstone National Park", State: "WY"},
		{Name: "Zion National Park", State: "UT"},
		{Name: "Acadia National Park", State: "ME"},
	}}
}

func (r *stubParkRepo) GetAll(_ context.Context) ([]domain.NationalPark, error) {
	return r.parks, nil
}

func (r *stubParkRepo) GetByState(_ context.Context, state string) ([]domain.NationalPark, error) {
	var out []domain.NationalPark
	for _, p := range r.parks {
		if strings.EqualFold(p.State, state) {
			out = append(out, p)
		}
	}
	return out, nil
}
