package ports

import (
	"context"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

// AuthService exchanges credentials for tokens and resolves tokens back to
// identities.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenService signs and parses access tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Parse validates signature and expiry and returns the subject claim.
	Parse(token string) (string, error)
}

// LoginLimiter throttles login attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
