package ports

import (
	"context"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

// AuthService implements account registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	// Login returns a signed JWT and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
