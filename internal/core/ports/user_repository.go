package ports

import (
	"context"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

// UserRepository is the credential store. FindByEmail matches the email
// exactly and returns domain.ErrUserNotFound when no user exists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
