package handler

import (
	"bytes"
	"encoding/json"

	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
)

// optionalString records whether a JSON field was present and whether it was null.
type optionalString struct {
	ports.OptionalString
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type createTaskRequest struct {
	Title       string  `json:"title" example:"Write report"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" example:"pending"`
}

func (r createTaskRequest) toInput() ports.CreateTaskInput {
	in := ports.CreateTaskInput{Title: r.Title, Description: r.Description}
	if r.Status != nil {
		in.Status = *r.Status
	}
	return in
}

// updateTaskRequest holds a partial update. Omitted fields are left unchanged;
// a null description clears it.
type updateTaskRequest struct {
	Title       optionalString `json:"title" swaggertype:"string"`
	Description optionalString `json:"description" swaggertype:"string"`
	Status      optionalString `json:"status" swaggertype:"string"`
}

func (r updateTaskRequest) toInput() ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       r.Title.OptionalString,
		Description: r.Description.OptionalString,
		Status:      r.Status.OptionalString,
	}
}

type taskListResponse struct {
	Items      []*domain.Task `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

func toTaskListResponse(r *ports.ListTasksResult) taskListResponse {
	return taskListResponse{
		Items:      r.Items,
		Total:      r.Total,
		Page:       r.Page,
		PageSize:   r.PageSize,
		TotalPages: r.TotalPages,
	}
}
