package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	AppName  string `env:"APP_NAME,  default=Task Manager"`
	Env      string `env:"APP_ENV,   default=local"`
	Debug    bool   `env:"DEBUG,     default=false"`
	Port     string `env:"PORT,      default=8000"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT     JWTConfig
	DB      DBConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	LoginRL LoginRateLimitConfig
}

type JWTConfig struct {
	Secret        string `env:"JWT_SECRET_KEY"`
	Algorithm     string `env:"JWT_ALGORITHM,      default=HS256"`
	ExpireMinutes int    `env:"JWT_EXPIRE_MINUTES, default=60"`
}

// TTL is the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER,    default=postgres"`
	Host     string `env:"DB_HOST,      default=localhost"`
	Port     int    `env:"DB_PORT,      default=5432"`
	Name     string `env:"DB_NAME,      default=tasks"`
	User     string `env:"DB_USER,      default=postgres"`
	Password string `env:"DB_PASSWORD"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tasks"`
}

// RedisConfig is optional. An empty Addr disables the login limiter.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type LoginRateLimitConfig struct {
	Limit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	Window time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`
}

// Load reads configuration from the process environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported", c.JWT.Algorithm))
	}
	if c.JWT.ExpireMinutes <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE_MINUTES must be positive"))
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.DB.Driver))
	}
	if c.Redis.Addr != "" && (c.LoginRL.Limit <= 0 || c.LoginRL.Window <= 0) {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT and LOGIN_RATE_WINDOW must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
