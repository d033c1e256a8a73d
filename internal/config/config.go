package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Locale      string

	DatabaseURL   string
	RunMigrations bool

	RedisURL        string
	CommentCacheTTL time.Duration

	// AuthIssuer and AuthAudience select OIDC verification of ID tokens.
	// When AuthIssuer is empty, tokens are verified with JWTSecret instead.
	AuthIssuer       string
	AuthAudience     string
	JWTSecret        string
	SuperAdminEmails []string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string

	OutboxInterval      time.Duration
	OutboxBatchSize     int
	DispatchConcurrency int

	WriteRateLimit int
}

func Load() *Config {
	projectID := getEnv("FIREBASE_PROJECT_ID", "")
	issuer := getEnv("AUTH_ISSUER", "")
	if issuer == "" && projectID != "" {
		issuer = "https://securetoken.google.com/" + projectID
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Locale:      getEnv("NOTIFICATION_LOCALE", "en"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RunMigrations: getBoolEnv("RUN_MIGRATIONS", true),

		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		CommentCacheTTL: getDurationEnv("COMMENT_CACHE_TTL", 5*time.Minute),

		AuthIssuer:       issuer,
		AuthAudience:     getEnv("AUTH_AUDIENCE", projectID),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		SuperAdminEmails: getListEnv("SUPER_ADMIN_EMAILS"),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "devsa-profile-images"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@devsa.community"),
		Domain:       getEnv("DOMAIN", "localhost:3000"),

		OutboxInterval:      getDurationEnv("OUTBOX_INTERVAL", 30*time.Second),
		OutboxBatchSize:     getIntEnv("OUTBOX_BATCH_SIZE", 100),
		DispatchConcurrency: getIntEnv("DISPATCH_CONCURRENCY", 8),

		WriteRateLimit: getIntEnv("WRITE_RATE_LIMIT_PER_MINUTE", 30),
	}
}

// UsesOIDC reports whether ID tokens are verified against an OIDC issuer.
func (c *Config) UsesOIDC() bool {
	return c.AuthIssuer != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping blanks.
func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
