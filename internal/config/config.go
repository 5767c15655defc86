// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the API server
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// RateLimitConfig holds per-IP rate limit settings
type RateLimitConfig struct {
	RequestsPerMinute int
}

// SeedConfig holds the optional content sync settings.
// File is applied at start-up; Schedule is a standard cron expression for re-applying it.
type SeedConfig struct {
	File     string
	Schedule string
}

// ClientConfig holds settings for the skillhub CLI
type ClientConfig struct {
	APIURL    string
	StatePath string
}

const (
	defaultServerPort     = 5000
	defaultTokenExpiry    = "720h" // 30 days
	defaultRequestsPerMin = 100
	defaultAPIURL         = "http://localhost:5000"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	var err error
	if cfg.Database, err = loadDatabase(""); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", defaultServerPort)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	if cfg.JWT, err = loadJWT(""); err != nil {
		return nil, err
	}

	requestsPerMinute, err := intEnv("RATE_LIMIT_PER_MINUTE", defaultRequestsPerMin)
	if err != nil {
		return nil, err
	}
	if requestsPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	cfg.RateLimit.RequestsPerMinute = requestsPerMinute

	cfg.Seed.File = os.Getenv("SEED_FILE")
	cfg.Seed.Schedule = os.Getenv("SEED_SCHEDULE")
	if cfg.Seed.Schedule != "" && cfg.Seed.File == "" {
		return nil, fmt.Errorf("SEED_SCHEDULE requires SEED_FILE")
	}

	return cfg, nil
}

// LoadClient reads the CLI configuration.
// The state path falls back to <user config dir>/skillhub/state.db.
func LoadClient() (*ClientConfig, error) {
	godotenv.Load()

	cfg := &ClientConfig{
		APIURL:    strings.TrimRight(os.Getenv("SKILLHUB_API_URL"), "/"),
		StatePath: os.Getenv("SKILLHUB_STATE"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.StatePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		cfg.StatePath = filepath.Join(dir, "skillhub", "state.db")
	}

	return cfg, nil
}

// DSN returns the database connection string.
// An empty string means no database is configured.
func (c *Config) DSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// loadDatabase reads the required DB_* variables, with an optional prefix such as "TEST_"
func loadDatabase(prefix string) (DatabaseConfig, error) {
	var db DatabaseConfig

	host, err := requiredEnv(prefix + "DB_HOST")
	if err != nil {
		return db, err
	}
	db.Host = host

	portStr, err := requiredEnv(prefix + "DB_PORT")
	if err != nil {
		return db, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return db, fmt.Errorf("invalid %sDB_PORT: %w", prefix, err)
	}
	db.Port = port

	if db.User, err = requiredEnv(prefix + "DB_USER"); err != nil {
		return db, err
	}
	if db.Password, err = requiredEnv(prefix + "DB_PASSWORD"); err != nil {
		return db, err
	}
	if db.DBName, err = requiredEnv(prefix + "DB_NAME"); err != nil {
		return db, err
	}

	return db, nil
}

// loadJWT reads JWT_SECRET and JWT_TOKEN_EXPIRY, with an optional prefix
func loadJWT(prefix string) (JWTConfig, error) {
	var jwt JWTConfig

	secret, err := requiredEnv(prefix + "JWT_SECRET")
	if err != nil {
		return jwt, err
	}
	jwt.Secret = secret

	expiryStr := os.Getenv(prefix + "JWT_TOKEN_EXPIRY")
	if expiryStr == "" {
		expiryStr = defaultTokenExpiry
	}
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		return jwt, fmt.Errorf("invalid %sJWT_TOKEN_EXPIRY: %w", prefix, err)
	}
	if expiry <= 0 {
		return jwt, fmt.Errorf("%sJWT_TOKEN_EXPIRY must be positive", prefix)
	}
	jwt.TokenExpiry = expiry

	return jwt, nil
}

func requiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// parseOrigins splits a comma-separated origin list.
// An empty or blank list allows all origins (for development).
func parseOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, origin := range parts {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
