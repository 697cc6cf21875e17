package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	DatabaseURL string

	AdminUsername     string
	AdminPasswordHash string
	AdminTokenSecret  string
	AdminTokenTTL     time.Duration
	JWTIssuer         string
	JWTAudience       string
	CookieDomain      string
	CookieSecure      bool
	CookieSameSite    string

	CORSAllowedOrigins []string

	SheetsServiceAccountEmail string
	SheetsPrivateKeyPEM       string
	SheetsTokenURL            string
	SheetsScope               string
	SheetsSpreadsheetID       string
	SheetsRange               string
	SheetsTimeout             time.Duration

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	RedisAddr              string
	ContactRateLimitPerMin int
	LoginRateLimitPerMin   int
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                       getEnv("APP_ENV", "development"),
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		AdminUsername:             os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash:         os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTokenSecret:          os.Getenv("ADMIN_TOKEN_SECRET"),
		JWTIssuer:                 getEnv("JWT_ISSUER", "manavinverse-service"),
		JWTAudience:               getEnv("JWT_AUDIENCE", "manavinverse-admin"),
		CookieDomain:              os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:              getEnvBool("COOKIE_SECURE", true),
		CookieSameSite:            strings.ToLower(getEnv("COOKIE_SAMESITE", "lax")),
		CORSAllowedOrigins:        splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SheetsServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		SheetsPrivateKeyPEM:       os.Getenv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY"),
		SheetsTokenURL:            getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
		SheetsScope:               getEnv("GOOGLE_SHEETS_SCOPE", "https://www.googleapis.com/auth/spreadsheets"),
		SheetsSpreadsheetID:       os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		SheetsRange:               getEnv("GOOGLE_SHEETS_RANGE", "Sheet1!A:E"),
		MinIOEndpoint:             os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey:            os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey:            os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:               getEnv("MINIO_BUCKET", "manavinverse-media"),
		MinIOUseSSL:               getEnvBool("MINIO_USE_SSL", false),
		RedisAddr:                 os.Getenv("REDIS_ADDR"),
		ContactRateLimitPerMin:    getEnvInt("CONTACT_RATE_LIMIT_PER_MIN", 10),
		LoginRateLimitPerMin:      getEnvInt("LOGIN_RATE_LIMIT_PER_MIN", 5),
	}

	tokenTTL, err := time.ParseDuration(getEnv("ADMIN_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("parse ADMIN_TOKEN_TTL: %w", err)
	}
	cfg.AdminTokenTTL = tokenTTL

	sheetsTimeout, err := time.ParseDuration(getEnv("GOOGLE_SHEETS_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("parse GOOGLE_SHEETS_TIMEOUT: %w", err)
	}
	cfg.SheetsTimeout = sheetsTimeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.AdminUsername == "" {
		errs = append(errs, "ADMIN_USERNAME is required")
	}
	if c.AdminPasswordHash == "" {
		errs = append(errs, "ADMIN_PASSWORD_HASH is required")
	}
	if len(c.AdminTokenSecret) < 32 {
		errs = append(errs, "ADMIN_TOKEN_SECRET must be at least 32 chars")
	}
	if c.AdminTokenTTL <= 0 || c.AdminTokenTTL > 24*time.Hour {
		errs = append(errs, "ADMIN_TOKEN_TTL must be between 1s and 24h")
	}
	if c.SheetsTimeout <= 0 || c.SheetsTimeout > time.Minute {
		errs = append(errs, "GOOGLE_SHEETS_TIMEOUT must be between 1s and 1m")
	}
	if c.SheetsSyncConfigured() {
		if c.SheetsServiceAccountEmail == "" {
			errs = append(errs, "GOOGLE_SERVICE_ACCOUNT_EMAIL is required when sheets sync is configured")
		}
		if c.SheetsPrivateKeyPEM == "" {
			errs = append(errs, "GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY is required when sheets sync is configured")
		}
		if c.SheetsSpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SHEETS_SPREADSHEET_ID is required when sheets sync is configured")
		}
	}
	if c.ContactRateLimitPerMin <= 0 {
		errs = append(errs, "CONTACT_RATE_LIMIT_PER_MIN must be > 0")
	}
	if c.LoginRateLimitPerMin <= 0 {
		errs = append(errs, "LOGIN_RATE_LIMIT_PER_MIN must be > 0")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// SheetsSyncConfigured reports whether sheets credentials were provided at all.
// The sync leg is optional: a deployment without them keeps submissions
// Postgres-only and every record stays flagged as unsynced.
func (c *Config) SheetsSyncConfigured() bool {
	return c.SheetsServiceAccountEmail != "" || c.SheetsPrivateKeyPEM != "" || c.SheetsSpreadsheetID != ""
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
