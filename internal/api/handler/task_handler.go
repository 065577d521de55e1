package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanager/tasks-api/internal/api/metrics"
	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
	"github.com/taskmanager/tasks-api/internal/core/service"
)

type TaskHandler struct {
	svc ports.TaskService
	log zerolog.Logger
}

func NewTaskHandler(svc ports.TaskService, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// Create creates a task.
//
// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	task, err := h.svc.CreateTask(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	h.log.Debug().Int64("task_id", task.ID).Int64("user_id", id.UserID).Msg("create task")
	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, task)
}

// Get returns one task.
//
// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.svc.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, task)
}

// List returns one page of tasks ordered by id.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"  default(1)
// @Param        page_size  query     int  false  "Page size"    default(10)
// @Success      200        {object}  taskListResponse
// @Failure      401        {object}  map[string]string
// @Failure      422        {object}  map[string]any
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	page, pageSize := 1, service.DefaultPageSize
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("page_size", &pageSize).
		BindError(); err != nil {
		field := "page"
		var be *echo.BindingError
		if errors.As(err, &be) {
			field = be.Field
		}
		return domain.NewValidationError(field, field+" must be an integer")
	}

	res, err := h.svc.ListTasks(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, toTaskListResponse(res))
}

// Update applies a partial update to a task.
//
// @Summary      Update task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	task, err := h.svc.UpdateTask(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task.
//
// @Summary      Delete task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return 0, domain.NewValidationError("id", "id must be an integer")
	}
	return id, nil
}
