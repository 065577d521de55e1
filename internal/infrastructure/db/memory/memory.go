// Package memory provides mutex-guarded in-process repositories. It backs
// DB_DRIVER=memory and the end-to-end HTTP tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

// UserRepository is an in-memory credential store keyed by exact email.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User), nextID: 1}
}

// Add provisions a user with an already-hashed password.
func (r *UserRepository) Add(email, passwordHash string, active bool) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := &domain.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.users[email] = u
	clone := *u
	return &clone
}

// SetActive toggles the active flag. It reports whether the user exists.
func (r *UserRepository) SetActive(email string, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if ok {
		u.IsActive = active
	}
	return ok
}

func (r *UserRepository) Remove(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, email)
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// TaskRepository keeps tasks in insertion order, which is id order.
type TaskRepository struct {
	mu     sync.RWMutex
	tasks  []*domain.Task
	nextID int64
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{nextID: 1}
}

func (r *TaskRepository) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneTask(t)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.nextID++
	r.tasks = append(r.tasks, stored)
	return cloneTask(stored), nil
}

func (r *TaskRepository) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return cloneTask(r.tasks[i]), nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *TaskRepository) List(_ context.Context, offset, limit int) ([]*domain.Task, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.tasks))
	out := []*domain.Task{}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(r.tasks) {
		return out, total, nil
	}
	end := offset + min(limit, len(r.tasks)-offset)
	for _, t := range r.tasks[offset:end] {
		out = append(out, cloneTask(t))
	}
	return out, total, nil
}

func (r *TaskRepository) Update(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(r.tasks[i])
	return cloneTask(r.tasks[i]), nil
}

func (r *TaskRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return true, nil
}

func (r *TaskRepository) Ping(context.Context) error { return nil }

func (r *TaskRepository) indexOf(id int64) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	if t.Description != nil {
		d := *t.Description
		clone.Description = &d
	}
	return &clone
}
