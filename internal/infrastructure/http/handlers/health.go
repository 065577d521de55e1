package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Pinger is a storage backend that can report its liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthDependenciesHandler handles GET /health/db, the readiness probe.
// Checks the task store and, when configured, Redis.
type HealthDependenciesHandler struct {
	db    Pinger
	redis redis.Cmdable
	log   zerolog.Logger
}

// NewHealthDependenciesHandler builds the readiness probe. rdb may be nil when
// Redis is not configured.
func NewHealthDependenciesHandler(db Pinger, rdb redis.Cmdable, log zerolog.Logger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		db:    db,
		redis: rdb,
		log:   log,
	}
}

type readinessResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Readiness reports dependency status. Failure details are logged, never
// returned to the caller.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := readinessResponse{Status: "ok", Database: "connected", Redis: "disabled"}
	httpStatus := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("database health check failed")
		resp.Database = "unavailable"
		resp.Status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// The login limiter fails open, so Redis is reported but not fatal.
			h.log.Warn().Err(err).Msg("redis health check failed")
			resp.Redis = "unavailable"
		} else {
			resp.Redis = "connected"
		}
	}

	return c.JSON(httpStatus, resp)
}
