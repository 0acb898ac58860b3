package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDatabaseURL = "sqlite://finance_tracker.db"
	DefaultFrontendURL = "http://localhost:3002"

	// DevelopmentSecret signs tokens only when APP_ENV=development and no
	// secret was configured.
	DevelopmentSecret = "development-only-secret-change-me"
)

type Config struct {
	// HTTP server
	Port        string
	FrontendURL string

	// Logging
	LogLevel  string
	LogFormat string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret         string
	JWTSecretResource string
	ProjectID         string
	AccessTokenTTL    time.Duration
	BCryptCost        int

	LoginRatePerMinute int
	LoginRateBurst     int

	AppEnv string
}

func New() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", DefaultFrontendURL),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DatabaseURL: NormalizeDatabaseURL(getEnv("DATABASE_URL", DefaultDatabaseURL)),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTSecretResource: os.Getenv("JWT_SECRET_RESOURCE"),
		ProjectID:         os.Getenv("PROJECT_ID"),
		AccessTokenTTL:    getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		BCryptCost:        getEnvInt("BCRYPT_COST", 0),

		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginRateBurst:     getEnvInt("LOGIN_RATE_BURST", 5),

		AppEnv: getEnv("APP_ENV", "production"),
	}
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// Validate reports every problem found rather than stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.DatabaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid DATABASE_URL: %v", err))
	} else if u.Scheme != "sqlite" && u.Scheme != "postgresql" {
		problems = append(problems, fmt.Sprintf("unsupported DATABASE_URL scheme '%s': must be sqlite or postgresql", u.Scheme))
	}

	if u, err := url.Parse(c.FrontendURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid FRONTEND_URL '%s'", c.FrontendURL))
	}

	if c.JWTSecret == "" && c.JWTSecretResource == "" && !c.IsDevelopment() {
		problems = append(problems, "JWT_SECRET or JWT_SECRET_RESOURCE is required outside development")
	}
	if c.JWTSecretResource != "" && !strings.HasPrefix(c.JWTSecretResource, "projects/") && c.ProjectID == "" {
		problems = append(problems, "PROJECT_ID is required when JWT_SECRET_RESOURCE is a short secret name")
	}

	if c.AccessTokenTTL <= 0 {
		problems = append(problems, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.LoginRatePerMinute < 1 {
		problems = append(problems, "LOGIN_RATE_PER_MINUTE must be at least 1")
	}
	if c.LoginRateBurst < 1 {
		problems = append(problems, "LOGIN_RATE_BURST must be at least 1")
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be json or text", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// NormalizeDatabaseURL rewrites the postgres:// scheme some hosts hand out
// to postgresql://.
func NormalizeDatabaseURL(raw string) string {
	if strings.HasPrefix(raw, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(raw, "postgres://")
	}
	return raw
}

// ---- Helpers ----

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// bare numbers are minutes
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Minute
		}
	}
	return fallback
}
