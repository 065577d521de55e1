package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID             int64     `bson:"_id"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashed_password"`
	IsActive       bool      `bson:"is_active"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:           mu.ID,
		Email:        mu.Email,
		PasswordHash: mu.HashedPassword,
		IsActive:     mu.IsActive,
		CreatedAt:    mu.CreatedAt.UTC(),
	}, nil
}

// Seed inserts an active user unless one with the same email exists.
func (r *UserRepository) Seed(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if n > 0 {
		return nil
	}

	id, err := nextSequence(ctx, r.db, collectionUsers)
	if err != nil {
		return err
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": mongoUser{
			ID:             id,
			Email:          email,
			HashedPassword: passwordHash,
			IsActive:       true,
			CreatedAt:      time.Now().UTC().Truncate(time.Millisecond),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed user: %w", err)
	}
	return nil
}
