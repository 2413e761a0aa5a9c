package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.Username]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *u
	clone.ID = "user-" + u.Username
	r.users[u.Username] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", 0)
	ctx := context.Background()

	user, err := svc.Register(ctx, "wanda", "hunter2", "wanda@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if user.PasswordHash == "hunter2" {
		t.Error("password must be hashed")
	}

	token, logged, err := svc.Login(ctx, "wanda", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %q, want %q", logged.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Errorf("sub claim = %v, want %q", claims["sub"], user.ID)
	}
}

func TestAuthLoginRejectsBadPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", 0)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "wanda", "hunter2", ""); err != nil {
		t.Fatal(err)
	}

	_, _, err := svc.Login(ctx, "wanda", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}

	_, _, err = svc.Login(ctx, "nobody", "hunter2")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
