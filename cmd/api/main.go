// @title                       Task Manager API
// @version                     1.0
// @description                 Task management REST API with JWT authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskmanager/tasks-api/internal/api"
	"github.com/taskmanager/tasks-api/internal/core/ports"
	"github.com/taskmanager/tasks-api/internal/core/service"
	"github.com/taskmanager/tasks-api/internal/infrastructure/config"
	"github.com/taskmanager/tasks-api/internal/infrastructure/db/memory"
	"github.com/taskmanager/tasks-api/internal/infrastructure/db/mongo"
	"github.com/taskmanager/tasks-api/internal/infrastructure/db/postgres"
	"github.com/taskmanager/tasks-api/internal/infrastructure/db/redis"
	"github.com/taskmanager/tasks-api/pkg/logger"
)

// Seed account created on first start. The postgres migration seeds the same row.
const (
	seedAdminEmail = "admin@example.com"
	seedAdminHash  = "$2b$12$rQUxHudgzjsO3Vz2HjczVOeSWYcrg31j03A.8ic0oFbO4IUSnwQ2e"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tasks-api:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log := logger.New(logger.Options{
		Level:  level,
		Pretty: cfg.Debug,
		App:    cfg.AppName,
		Env:    cfg.Env,
	})

	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL())
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	deps := api.Deps{
		Log:   log,
		Auth:  service.NewAuthService(store.users, tokens, log),
		Tasks: service.NewTaskService(store.tasks, log),
		DB:    store.tasks,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login rate limiting disabled")
		} else {
			defer closeRedis(rdb, log)
			deps.Redis = rdb
			deps.Limiter = redis.NewLoginLimiter(rdb, cfg.LoginRL.Limit, cfg.LoginRL.Window)
			log.Info().Int("limit", cfg.LoginRL.Limit).Dur("window", cfg.LoginRL.Window).Msg("login rate limiting enabled")
		}
	}

	e := api.NewRouter(deps)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.DB.Driver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

type storage struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			Name:     cfg.DB.Name,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			MaxConns: cfg.DB.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).Msg("postgres ready")
		return &storage{
			users: postgres.NewUserRepository(pool),
			tasks: postgres.NewTaskRepository(pool),
			close: pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		disconnect := func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			disconnect()
			return nil, err
		}
		users := mongo.NewUserRepository(db)
		if err := users.Seed(ctx, seedAdminEmail, seedAdminHash); err != nil {
			disconnect()
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo ready")
		return &storage{users: users, tasks: mongo.NewTaskRepository(db), close: disconnect}, nil

	case config.DriverMemory:
		users := memory.NewUserRepository()
		users.Add(seedAdminEmail, seedAdminHash, true)
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return &storage{users: users, tasks: memory.NewTaskRepository(), close: func() {}}, nil
	}

	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
