package domain

import "time"

const (
	// StatusPending is applied when a task is created without a status.
	StatusPending = "pending"

	MaxTitleLength  = 255
	MaxStatusLength = 50
)

// Task is a unit of work. Status is free-form text.
type Task struct {
	ID          int64     `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description *string   `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// TaskPatch carries the fields of a partial update. A nil pointer means the
// field was not sent. ClearDescription sets description to NULL.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription && p.Status == nil
}

// Apply writes the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.ClearDescription {
		t.Description = nil
	} else if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
