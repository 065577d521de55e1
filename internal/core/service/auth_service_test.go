package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(t *testing.T, email, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           int64(len(r.users) + 1),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[email] = u
	return u
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func newAuthSvc(t *testing.T, repo *stubUserRepo) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "alice@example.com", "s3cret", true)
	svc, _ := newAuthSvc(t, repo)

	user, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "alice@example.com", "s3cret", true)
	repo.add(t, "inactive@example.com", "s3cret", false)
	svc, _ := newAuthSvc(t, repo)

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "alice@example.com", "wrong"},
		{"unknown email", "ghost@example.com", "s3cret"},
		{"email case differs", "Alice@example.com", "s3cret"},
		{"inactive account", "inactive@example.com", "s3cret"},
		{"empty password", "alice@example.com", ""},
	}

	for _, tc := range cases {
		_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
		if err != domain.ErrInvalidCredentials {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestAuthService_Authenticate_StorageErrorPropagates(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc, _ := newAuthSvc(t, repo)

	_, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthService_Login_IssuesVerifiableToken(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "carol@example.com", "s3cret", true)
	svc, tokens := newAuthSvc(t, repo)

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	sub, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if sub != "carol@example.com" {
		t.Fatalf("expected subject carol@example.com, got %q", sub)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, "dave@example.com", "goodpass", true)
	svc, _ := newAuthSvc(t, repo)

	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Verify_ResolvesIdentity(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.add(t, "erin@example.com", "pw", true)
	svc, tokens := newAuthSvc(t, repo)

	token, _ := tokens.Issue(u)
	id, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id.UserID != u.ID || id.Email != u.Email {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthService_Verify_RejectsRemovedOrInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.add(t, "frank@example.com", "pw", true)
	svc, tokens := newAuthSvc(t, repo)

	token, _ := tokens.Issue(u)

	repo.users[u.Email].IsActive = false
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("inactive: expected ErrInvalidToken, got %v", err)
	}

	delete(repo.users, u.Email)
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("deleted: expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Verify_GarbageToken(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	if _, err := svc.Verify(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
