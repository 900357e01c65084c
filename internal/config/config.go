package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// InsecureDefaultSecret is the fallback HMAC secret used when
// SESSION_HMAC_SECRET is unset. Validate rejects it in production.
const InsecureDefaultSecret = "change-this-secret"

// Config holds attendance-service configuration.
type Config struct {
	AppEnv   string // APP_ENV
	AppHost  string // APP_HOST
	HTTPPort string // APP_PORT or HTTP_PORT
	LogLevel string // LOG_LEVEL

	// PostgreSQL
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}

	// HMACSecret is the symmetric key shared with proximity beacons
	// (SESSION_HMAC_SECRET).
	HMACSecret string

	// FreshnessWindowMS is the symmetric accept window for event timestamps.
	FreshnessWindowMS int64

	// StreamBuffer is the per-subscriber channel depth for live updates.
	StreamBuffer int

	// WebSocket upgrader buffers.
	WSReadBufferSize  int
	WSWriteBufferSize int
}

// Load loads config from environment (.env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	freshness, _ := strconv.ParseInt(getEnv("ATTENDANCE_FRESHNESS_MS", "120000"), 10, 64)
	streamBuf, _ := strconv.Atoi(getEnv("STREAM_BUFFER", "16"))
	readBuf, _ := strconv.Atoi(getEnv("WS_READ_BUFFER_SIZE", "1024"))
	writeBuf, _ := strconv.Atoi(getEnv("WS_WRITE_BUFFER_SIZE", "1024"))

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		AppHost:           getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:          firstEnv("APP_PORT", "HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		HMACSecret:        getEnv("SESSION_HMAC_SECRET", InsecureDefaultSecret),
		FreshnessWindowMS: freshness,
		StreamBuffer:      streamBuf,
		WSReadBufferSize:  readBuf,
		WSWriteBufferSize: writeBuf,
	}
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.Database = getEnv("DB_DATABASE", "scams_attendance")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg, nil
}

// Validate checks required fields and production safety.
func (c *Config) Validate() error {
	if c.DB.Host == "" {
		return errors.New("config: DB_HOST is required")
	}
	if c.DB.User == "" {
		return errors.New("config: DB_USER is required")
	}
	if c.DB.Database == "" {
		return errors.New("config: DB_DATABASE is required")
	}
	if c.FreshnessWindowMS <= 0 {
		return errors.New("config: ATTENDANCE_FRESHNESS_MS must be positive")
	}
	if c.AppEnv == "production" {
		if c.DB.Password == "" {
			return errors.New("config: in production DB_PASSWORD is required")
		}
		if c.HMACSecret == InsecureDefaultSecret {
			return errors.New("config: in production SESSION_HMAC_SECRET must be set")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

// DatabaseURL returns the postgres URL for golang-migrate.
func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	keys := keysAndDef[:len(keysAndDef)-1]
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
