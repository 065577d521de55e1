package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// CreateTask validates input, applies the default status and persists the task.
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	verr := &domain.ValidationError{Fields: map[string]string{}}

	title := strings.TrimSpace(input.Title)
	checkTitle(verr, title)

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = domain.StatusPending
	}
	checkStatus(verr, status)

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	created, err := s.repo.Create(ctx, &domain.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Int64("task_id", created.ID).Str("status", created.Status).Msg("task created")
	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// ListTasks returns page (1-based) of pageSize tasks ordered by id.
// TotalPages is ceil(total/pageSize); a page past the end is empty.
func (s *TaskService) ListTasks(ctx context.Context, page, pageSize int) (*ports.ListTasksResult, error) {
	if page < 1 {
		return nil, domain.NewValidationError("page", "page must be at least 1")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, domain.NewValidationError("page_size", fmt.Sprintf("page_size must be between 1 and %d", MaxPageSize))
	}

	// Pages far past the end would overflow the offset; any offset beyond the
	// last row yields the same empty window.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}
	items, total, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if items == nil {
		items = []*domain.Task{}
	}

	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// UpdateTask applies only the fields present in input.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	verr := &domain.ValidationError{Fields: map[string]string{}}
	var patch domain.TaskPatch

	if input.Title.Set {
		title := strings.TrimSpace(input.Title.Value)
		if input.Title.Null {
			verr.Fields["title"] = "title cannot be null"
		} else {
			checkTitle(verr, title)
		}
		patch.Title = &title
	}

	if input.Description.Set {
		if input.Description.Null {
			patch.ClearDescription = true
		} else {
			d := input.Description.Value
			patch.Description = &d
		}
	}

	if input.Status.Set {
		status := strings.TrimSpace(input.Status.Value)
		if input.Status.Null {
			verr.Fields["status"] = "status cannot be null"
		} else {
			checkStatus(verr, status)
		}
		patch.Status = &status
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		s.logger.Info().Int64("task_id", id).Msg("task updated")
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !removed {
		return domain.ErrTaskNotFound
	}

	s.logger.Info().Int64("task_id", id).Msg("task deleted")
	return nil
}

func totalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func checkTitle(verr *domain.ValidationError, title string) {
	switch {
	case title == "":
		verr.Fields["title"] = "title is required"
	case utf8.RuneCountInString(title) > domain.MaxTitleLength:
		verr.Fields["title"] = fmt.Sprintf("title must be at most %d characters", domain.MaxTitleLength)
	}
}

func checkStatus(verr *domain.ValidationError, status string) {
	switch {
	case status == "":
		verr.Fields["status"] = "status cannot be empty"
	case utf8.RuneCountInString(status) > domain.MaxStatusLength:
		verr.Fields["status"] = fmt.Sprintf("status must be at most %d characters", domain.MaxStatusLength)
	}
}
