package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
env: prod
http:
  addr: ":9090"
auth:
  jwt_secret: file-secret
  access_ttl: 30m
  login_attempts: 3
  login_window: 5m
admins:
  - email: chef@example.com
    name: Margaret
    password: pw
site:
  read_retention: 720h
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %s", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.AccessTTL != 30*time.Minute {
		t.Fatalf("unexpected access ttl: %v", cfg.Auth.AccessTTL)
	}
	if cfg.Auth.LoginAttempts != 3 || cfg.Auth.LoginWindow != 5*time.Minute {
		t.Fatalf("unexpected login limits: %d/%v", cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)
	}
	if len(cfg.Admins) != 1 || cfg.Admins[0].Email != "chef@example.com" {
		t.Fatalf("unexpected admin seeds: %+v", cfg.Admins)
	}
	if cfg.Site.ReadRetention != 720*time.Hour {
		t.Fatalf("unexpected read retention: %v", cfg.Site.ReadRetention)
	}

	// Untouched keys keep their defaults.
	if cfg.Auth.RefreshGrace != 15*time.Minute {
		t.Fatalf("refresh grace default should stay 15m, got %v", cfg.Auth.RefreshGrace)
	}
	if cfg.Site.AdminPathPrefix != "/admin" || cfg.Site.LoginPath != "/admin/login" {
		t.Fatalf("unexpected site path defaults: %+v", cfg.Site)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr default should survive: %s", cfg.Redis.Addr)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.AccessTTL != time.Hour {
		t.Fatalf("unexpected default access ttl: %v", cfg.Auth.AccessTTL)
	}
	if cfg.Auth.LoginAttempts != 5 || cfg.Auth.LoginWindow != 15*time.Minute {
		t.Fatalf("unexpected default login limits: %d/%v", cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)
	}
	if cfg.Auth.JWTSecret != "" {
		t.Fatal("jwt secret must default to empty so auth fails closed")
	}
	if cfg.Site.CleanupInterval != 6*time.Hour {
		t.Fatalf("unexpected default cleanup interval: %v", cfg.Site.CleanupInterval)
	}
}

func TestEnvOverridesBeatFileValues(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("AUTH_LOGIN_ATTEMPTS", "7")
	t.Setenv("AUTH_ACCESS_TTL", "2h")
	t.Setenv("HTTP_ADDR", ":7070")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("auth:\n  jwt_secret: file-secret\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("env must beat file: %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.LoginAttempts != 7 {
		t.Fatalf("unexpected login attempts: %d", cfg.Auth.LoginAttempts)
	}
	if cfg.Auth.AccessTTL != 2*time.Hour {
		t.Fatalf("unexpected access ttl: %v", cfg.Auth.AccessTTL)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
}

func TestLoadRejectsInvalidEnvDuration(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AUTH_ACCESS_TTL", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for malformed duration override")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"JWT_SECRET",
		"AUTH_ACCESS_TTL",
		"AUTH_REFRESH_GRACE",
		"AUTH_LOGIN_ATTEMPTS",
		"AUTH_LOGIN_WINDOW",
		"AUTH_PREVIEW_BYPASS",
		"CLEANUP_INTERVAL",
		"CLEANUP_READ_RETENTION",
	} {
		t.Setenv(key, "")
	}
}
