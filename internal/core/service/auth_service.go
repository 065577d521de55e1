package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so that a miss
// costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), 12)

// AuthService implements credential verification, login and token verification.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Authenticate checks email and password against the credential store.
// Unknown email, inactive account and wrong password all return
// domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Verify resolves a bearer token to a live identity. A valid signature is not
// enough: the subject must still exist and be active.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	email, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", domain.ErrInvalidToken)
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive subject", domain.ErrInvalidToken)
	}

	return &domain.Identity{UserID: user.ID, Email: user.Email}, nil
}
