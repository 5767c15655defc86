// Package database opens the MySQL pool and applies schema migrations
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsTable keeps this schema's history apart from other services sharing the database
const MigrationsTable = "skillhub_schema_migrations"

// Connect opens a pooled connection and pings it
func Connect(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("database is not configured")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate applies every pending migration from the migrations directory
func Migrate(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(MigrationsPath(), "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationsPath returns the migrate source URL, looking in ./migrations and then
// up to two parent directories so binaries and tests started from subdirectories find it
func MigrationsPath() string {
	for _, dir := range []string{"migrations", "../migrations", "../../migrations"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return "file://" + dir
		}
	}
	return "file://migrations"
}
