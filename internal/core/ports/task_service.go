package ports

import (
	"context"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

// CreateTaskInput carries the fields of a new task. Empty Status means default.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      string
}

// OptionalString distinguishes an omitted field (Set=false) from an explicit
// null (Set=true, Null=true) and a value.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

// UpdateTaskInput carries a partial update.
type UpdateTaskInput struct {
	Title       OptionalString
	Description OptionalString
	Status      OptionalString
}

// ListTasksResult is one page of tasks.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, page, pageSize int) (*ListTasksResult, error)
	UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
