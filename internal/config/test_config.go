package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests from TEST_* variables.
// If the test database is not configured, it returns a Config with an empty Database
// section, so DSN() is empty and callers can skip.
func LoadTestConfig() (*Config, error) {
	// Try loading from project root
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	if os.Getenv("TEST_DB_HOST") == "" {
		return cfg, nil
	}

	var err error
	if cfg.Database, err = loadDatabase("TEST_"); err != nil {
		return nil, err
	}

	cfg.JWT, err = loadJWT("TEST_")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
