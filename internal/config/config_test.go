package config

import (
	"errors"
	"testing"
	"time"

	"church-app-go/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ITEMS_PER_PAGE", "")
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("DB_LOG_QUERIES", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != EnvDevelopment || !cfg.DB.LogQueries {
		t.Fatalf("expected development with query logging, got env=%q log_queries=%v", cfg.Env, cfg.DB.LogQueries)
	}
	if cfg.Session.Secure {
		t.Fatalf("secure cookies must be off in development")
	}
	if cfg.ItemsPerPage != 10 {
		t.Fatalf("expected 10 items per page, got %d", cfg.ItemsPerPage)
	}
	if cfg.MaxUploadSize != 16*1024*1024 {
		t.Fatalf("unexpected max upload size %d", cfg.MaxUploadSize)
	}
	if cfg.Session.RememberDuration != 7*24*time.Hour {
		t.Fatalf("unexpected remember duration %s", cfg.Session.RememberDuration)
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SECRET_KEY", "")

	_, err := Load(logger.Nop())
	if !errors.Is(err, ErrInsecureSecret) {
		t.Fatalf("expected ErrInsecureSecret, got %v", err)
	}
}

func TestLoadProductionEnforcesSecureCookie(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("DB_LOG_QUERIES", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Session.Secure || cfg.DB.LogQueries {
		t.Fatalf("expected secure cookies and quiet SQL in production, got secure=%v log_queries=%v", cfg.Session.Secure, cfg.DB.LogQueries)
	}
}

func TestLoadTestingMode(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("ITEMS_PER_PAGE", "-3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsTesting() {
		t.Fatalf("expected testing mode")
	}
	if cfg.ItemsPerPage != 10 {
		t.Fatalf("non-positive page size should fall back to 10, got %d", cfg.ItemsPerPage)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadQueryLoggingOverride(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DB_LOG_QUERIES", "false")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.LogQueries {
		t.Fatalf("DB_LOG_QUERIES=false must silence SQL logging")
	}
}
