// Package sqlitestore is the embedded catalog store: SQLite through bun,
// schema managed by goose.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// DBConfig holds connection pool options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections. WAL mode
	// allows many readers next to the single writer.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// BusyTimeout is how long a writer waits for the database lock.
	BusyTimeout time.Duration
}

func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		BusyTimeout:     5 * time.Second,
	}
}

// Store implements the catalog write store, read model and outbox on SQLite.
type Store struct {
	db *bun.DB
}

// Open opens the database at path with DefaultDBConfig.
func Open(ctx context.Context, path string) (*Store, error) {
	return OpenWithConfig(ctx, path, DefaultDBConfig())
}

func OpenWithConfig(ctx context.Context, path string, cfg DBConfig) (*Store, error) {
	sqldb, err := sql.Open("sqlite", dsn(path, cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{db: bun.NewDB(sqldb, sqlitedialect.New())}, nil
}

// dsn sets pragmas per connection so every pooled connection enforces
// foreign keys. Transactions take the write lock up front, which turns
// writer contention into busy waits instead of deadlock errors.
func dsn(path string, cfg DBConfig) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Migrate runs all pending migrations.
func (s *Store) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.db.DB)
}

// Migrate runs all pending migrations on db.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// DB exposes the bun handle for tools and tests.
func (s *Store) DB() *bun.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
