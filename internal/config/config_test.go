package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
port: "8081"
base_path: v2/
db:
  driver: Postgres
  dsn: postgres://localhost/tasks
auth:
  jwt_secret: s3cret
  token_ttl: 30m
redis:
  addr: localhost:6379
  ttl: 1m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8081" {
		t.Fatalf("port: got %q", cfg.Port)
	}
	if cfg.BasePath != "/v2" {
		t.Fatalf("base path: got %q, want /v2", cfg.BasePath)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.DSN != "postgres://localhost/tasks" {
		t.Fatalf("db: got %+v", cfg.DB)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("auth: got %+v", cfg.Auth)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.TTL != time.Minute {
		t.Fatalf("redis: got %+v", cfg.Redis)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	path := writeConfig(t, "port: \"5000\"\n")
	t.Setenv("APP_AUTH_JWT_SECRET", "from-env")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("expected env secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env log level, got %q", cfg.Log.Level)
	}
	if cfg.BasePath != "/api" || cfg.DB.Driver != "sqlite" || cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis should be disabled by default, got %q", cfg.Redis.Addr)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{DB: DBConfig{Driver: "sqlite"}}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}

	cfg.Auth.JWTSecret = "x"
	cfg.DB.Driver = "mongo"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
