package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanager/tasks-api/internal/api/middleware"
	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error)
	getFn    func(ctx context.Context, id int64) (*domain.Task, error)
	listFn   func(ctx context.Context, page, pageSize int) (*ports.ListTasksResult, error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, in)
}

func (s *stubTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.getFn(ctx, id)
}

func (s *stubTaskService) ListTasks(ctx context.Context, page, pageSize int) (*ports.ListTasksResult, error) {
	return s.listFn(ctx, page, pageSize)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id int64, in ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

var createdAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTaskContext(method, target, body string, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	middleware.SetIdentity(c, &domain.Identity{UserID: 1, Email: "admin@example.com"})
	return c, rec
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
			if in.Title != "Write report" || in.Description != nil || in.Status != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Task{ID: 1, Title: in.Title, Status: domain.StatusPending, CreatedAt: createdAt}, nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, rec := newTaskContext(http.MethodPost, "/tasks", `{"title":"Write report"}`, "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["status"] != "pending" || resp["created_at"] != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if v, ok := resp["description"]; !ok || v != nil {
		t.Fatalf("expected description null, got %v (present=%v)", v, ok)
	}
}

func TestTaskHandler_Create_WrongFieldType(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, _ := newTaskContext(http.MethodPost, "/tasks", `{"title":42}`, "")
	err := h.Create(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTaskHandler_Get_NonIntegerID(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(ctx context.Context, id int64) (*domain.Task, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, _ := newTaskContext(http.MethodGet, "/tasks/abc", "", "abc")
	err := h.Get(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["id"] == "" {
		t.Fatalf("expected ValidationError on id, got %v", err)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(ctx context.Context, id int64) (*domain.Task, error) {
			if id != 99 {
				t.Fatalf("unexpected id %d", id)
			}
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, _ := newTaskContext(http.MethodGet, "/tasks/99", "", "99")
	if err := h.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_List_Defaults(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(ctx context.Context, page, pageSize int) (*ports.ListTasksResult, error) {
			if page != 1 || pageSize != 10 {
				t.Fatalf("expected defaults 1/10, got %d/%d", page, pageSize)
			}
			return &ports.ListTasksResult{Items: []*domain.Task{}, Total: 0, Page: 1, PageSize: 10}, nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, rec := newTaskContext(http.MethodGet, "/tasks", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := strings.TrimSpace(rec.Body.String()); got != `{"items":[],"total":0,"page":1,"page_size":10,"total_pages":0}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestTaskHandler_List_QueryParams(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(ctx context.Context, page, pageSize int) (*ports.ListTasksResult, error) {
			if page != 3 || pageSize != 2 {
				t.Fatalf("unexpected page args %d/%d", page, pageSize)
			}
			return &ports.ListTasksResult{Items: []*domain.Task{}, Total: 5, Page: 3, PageSize: 2, TotalPages: 3}, nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, rec := newTaskContext(http.MethodGet, "/tasks?page=3&page_size=2", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_List_BadQuery(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, zerolog.New(io.Discard))

	c, _ := newTaskContext(http.MethodGet, "/tasks?page_size=lots", "", "")
	err := h.List(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["page_size"] == "" {
		t.Fatalf("expected ValidationError on page_size, got %v", err)
	}
}

func TestTaskHandler_Update_Presence(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, id int64, in ports.UpdateTaskInput) (*domain.Task, error) {
			if id != 5 {
				t.Fatalf("unexpected id %d", id)
			}
			if in.Title.Set {
				t.Fatalf("title must be absent: %+v", in.Title)
			}
			if !in.Description.Set || !in.Description.Null {
				t.Fatalf("description must be explicit null: %+v", in.Description)
			}
			if !in.Status.Set || in.Status.Null || in.Status.Value != "done" {
				t.Fatalf("unexpected status: %+v", in.Status)
			}
			return &domain.Task{ID: 5, Title: "t", Status: "done", CreatedAt: createdAt}, nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, rec := newTaskContext(http.MethodPut, "/tasks/5", `{"description":null,"status":"done"}`, "5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, id int64) error {
			if id != 5 {
				t.Fatalf("unexpected id %d", id)
			}
			return nil
		},
	}
	h := NewTaskHandler(stub, zerolog.New(io.Discard))

	c, rec := newTaskContext(http.MethodDelete, "/tasks/5", "", "5")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestTaskHandler_RequiresIdentity(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{}, zerolog.New(io.Discard))

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/tasks", nil), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
