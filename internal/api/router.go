package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskmanager/tasks-api/internal/api/handler"
	"github.com/taskmanager/tasks-api/internal/api/metrics"
	"github.com/taskmanager/tasks-api/internal/api/middleware"
	"github.com/taskmanager/tasks-api/internal/core/ports"
	"github.com/taskmanager/tasks-api/internal/infrastructure/http/handlers"

	_ "github.com/taskmanager/tasks-api/docs"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log   zerolog.Logger
	Auth  ports.AuthService
	Tasks ports.TaskService
	DB    handlers.Pinger

	// Limiter and Redis are optional.
	Limiter ports.LoginLimiter
	Redis   redis.Cmdable

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	if err := metrics.Register(d.Registerer); err != nil {
		d.Log.Error().Err(err).Msg("register custom metrics")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "tasks",
		Registerer: d.Registerer,
	}))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.DB, d.Redis, d.Log)

	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/db", healthDepsHandler.Readiness) // readiness – is storage reachable?

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Limiter, d.Log)
	e.POST("/auth/login", authHandler.Login)

	// --- Task routes (bearer token required) ---
	taskHandler := handler.NewTaskHandler(d.Tasks, d.Log)
	tasks := e.Group("/tasks", middleware.Auth(d.Auth))
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
