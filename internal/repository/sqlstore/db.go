// Package sqlstore persists bill records in PostgreSQL (pgx) or SQLite
// (modernc) through sqlx.
package sqlstore

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"billscan/internal/config"
)

// DriverName maps a configured db.driver onto a database/sql driver name.
func DriverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return "sqlite"
}

// NewDB creates a connection pool for the configured driver.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName(cfg.Driver), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == "sqlite" {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
		return db, nil
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}
