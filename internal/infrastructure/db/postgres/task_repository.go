package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

const taskColumns = `id, title, description, status, created_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO tasks (title, description, status)
		VALUES ($1, $2, $3)
		RETURNING ` + taskColumns

	out, err := scanTask(r.db.QueryRow(ctx, query, t.Title, t.Description, t.Status))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return out, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return out, nil
}

func (r *TaskRepository) List(ctx context.Context, offset, limit int) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id ASC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	items := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return items, total, nil
}

// Update builds a SET clause from the fields present in patch so that
// omitted columns are left untouched in a single statement.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	query, args := buildUpdate(id, patch)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return out, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRow(ctx, `SELECT 1`).Scan(&one)
}

func buildUpdate(id int64, patch domain.TaskPatch) (string, []any) {
	var sets []string
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.ClearDescription {
		sets = append(sets, "description = NULL")
	} else if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + taskColumns
	return query, args
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}
