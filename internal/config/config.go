package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"church-app-go/pkg/logger"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"

	defaultSecretKey = "your-secret-key-change-this-in-production"
)

var ErrInsecureSecret = errors.New("SECRET_KEY must be set in production")

type Config struct {
	HTTPPort      string
	Env           string
	SecretKey     string
	MaxUploadSize int64
	ItemsPerPage  int
	CORSOrigins   []string
	App           AppInfo
	Session       SessionConfig
	DB            DBConfig
	Redis         RedisConfig
}

type AppInfo struct {
	Name    string
	Version string
	Author  string
	Purpose string
}

type SessionConfig struct {
	CookieName       string
	Lifetime         time.Duration
	RememberDuration time.Duration
	Secure           bool
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

// RedisConfig is optional; an empty URL keeps revoked sessions in process memory.
type RedisConfig struct {
	URL string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	env := normalizeEnv(getEnv("ENV", EnvDevelopment))

	cfg := Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		Env:           env,
		SecretKey:     getEnv("SECRET_KEY", defaultSecretKey),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 16*1024*1024)),
		ItemsPerPage:  getEnvInt("ITEMS_PER_PAGE", 10),
		CORSOrigins:   getEnvList("CORS_ALLOWED_ORIGINS"),
		App: AppInfo{
			Name:    getEnv("APP_NAME", "Church Information System (CIS)"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Author:  getEnv("APP_AUTHOR", "Development Team"),
			Purpose: getEnv("APP_PURPOSE", "Digitally organize church members and manage care groups"),
		},
		Session: SessionConfig{
			CookieName:       getEnv("SESSION_COOKIE_NAME", "cis_session"),
			Lifetime:         getEnvDuration("SESSION_LIFETIME", 24*time.Hour),
			RememberDuration: getEnvDuration("REMEMBER_DURATION", 7*24*time.Hour),
			Secure:           getEnvBool("SESSION_COOKIE_SECURE", env == EnvProduction),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "church_system"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			LogQueries:      getEnvBool("DB_LOG_QUERIES", env != EnvProduction),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
	}

	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = 10
	}

	if env == EnvProduction && cfg.SecretKey == defaultSecretKey {
		return Config{}, ErrInsecureSecret
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c Config) IsTesting() bool {
	return c.Env == EnvTesting
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case EnvProduction, "prod":
		return EnvProduction
	case EnvTesting, "test":
		return EnvTesting
	default:
		return EnvDevelopment
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
