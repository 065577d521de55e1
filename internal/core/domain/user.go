package domain

import "time"

// User models a credential holder. Users are provisioned out of band (seed
// migration or cmd/hashpw) and are never mutated through the API.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID int64
	Email  string
}
