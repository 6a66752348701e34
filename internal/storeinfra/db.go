package storeinfra

import (
	"context"
	"database/sql"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	DriverSQLite   = "sqlite3"
)

// Config describes how to reach the relational store.
type Config struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// DefaultConfig points at an in-memory SQLite database.
func DefaultConfig() Config {
	return Config{Driver: DriverSQLite, DSN: ":memory:"}
}

// Validate checks the driver name and the connection string.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverPostgres, DriverPGX, DriverSQLite)),
		validation.Field(&c.DSN, validation.Required),
		validation.Field(&c.MaxOpenConns, validation.Min(0)),
		validation.Field(&c.MaxIdleConns, validation.Min(0)),
	)
}

// OpenDB opens a bun database for cfg and checks the connection. When logger
// is not nil every query is logged through it.
func OpenDB(ctx context.Context, cfg Config, logger *slog.Logger) (*bun.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid database config")
	}

	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "open "+cfg.Driver+" database")
	}

	var db *bun.DB
	switch cfg.Driver {
	case DriverSQLite:
		// every connection to :memory: is a distinct database
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		if cfg.MaxOpenConns > 0 {
			sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "ping "+cfg.Driver+" database")
	}

	if cfg.Driver == DriverSQLite {
		// LIKE must be case-sensitive, as it is on PostgreSQL
		if _, err := db.ExecContext(ctx, "PRAGMA case_sensitive_like = ON"); err != nil {
			db.Close()
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "configure sqlite")
		}
	}

	if logger != nil {
		db.AddQueryHook(NewQueryLogger(logger))
	}

	return db, nil
}
