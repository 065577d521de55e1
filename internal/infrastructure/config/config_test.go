package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET_KEY": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "Task Manager" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.JWT.Algorithm != "HS256" || cfg.JWT.TTL() != time.Hour {
		t.Errorf("unexpected jwt config: %+v", cfg.JWT)
	}
	if cfg.DB.Driver != DriverPostgres || cfg.DB.Port != 5432 || cfg.DB.MaxConns != 10 {
		t.Errorf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.LoginRL.Limit != 10 || cfg.LoginRL.Window != time.Minute {
		t.Errorf("unexpected login rate limit: %+v", cfg.LoginRL)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET_KEY":     "s3cret",
		"JWT_ALGORITHM":      "HS512",
		"JWT_EXPIRE_MINUTES": "5",
		"DB_DRIVER":          "memory",
		"REDIS_ADDR":         "localhost:6379",
		"LOGIN_RATE_WINDOW":  "30s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWT.TTL() != 5*time.Minute || cfg.JWT.Algorithm != "HS512" {
		t.Errorf("unexpected jwt config: %+v", cfg.JWT)
	}
	if cfg.DB.Driver != DriverMemory {
		t.Errorf("Driver = %q", cfg.DB.Driver)
	}
	if cfg.LoginRL.Window != 30*time.Second {
		t.Errorf("Window = %v", cfg.LoginRL.Window)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET_KEY"},
		{"asymmetric algorithm", map[string]string{"JWT_SECRET_KEY": "x", "JWT_ALGORITHM": "RS256"}, "JWT_ALGORITHM"},
		{"zero ttl", map[string]string{"JWT_SECRET_KEY": "x", "JWT_EXPIRE_MINUTES": "0"}, "JWT_EXPIRE_MINUTES"},
		{"unknown driver", map[string]string{"JWT_SECRET_KEY": "x", "DB_DRIVER": "sqlite"}, "DB_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}
