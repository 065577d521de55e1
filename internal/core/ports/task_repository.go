package ports

import (
	"context"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create stores t and returns the record with storage-assigned ID and CreatedAt.
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// List returns a window of tasks ordered by id ascending and the total count.
	List(ctx context.Context, offset, limit int) ([]*domain.Task, int64, error)
	// Update applies patch and returns the stored record. An empty patch
	// returns the current record.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	// Delete reports whether a record existed and was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	Ping(ctx context.Context) error
}
