package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"github.com/joho/godotenv"

	"github.com/murkotick/catalog-service/internal/config"
	"github.com/murkotick/catalog-service/internal/logging"
	"github.com/murkotick/catalog-service/internal/store/spannerstore"
	"github.com/murkotick/catalog-service/internal/store/sqlitestore"
)

// Applies the catalog schema to the configured store.
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	go run ./cmd/migrate -driver spanner -database projects/test-project/instances/emulator-instance/databases/catalog
//
// Usage (sqlite):
//
//	go run ./cmd/migrate -driver sqlite -path ./data/catalog.db
func main() {
	_ = godotenv.Load()

	driver := flag.String("driver", envOr("CATALOG_STORE_DRIVER", config.StoreSQLite), "store driver: sqlite or spanner")
	path := flag.String("path", envOr("CATALOG_SQLITE_PATH", "./data/catalog.db"), "sqlite database path")
	db := flag.String("database", os.Getenv("CATALOG_SPANNER_DATABASE"), "spanner database name")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	logger := logging.New(envOr("CATALOG_LOG_LEVEL", "info"), "text", os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var err error
	switch *driver {
	case config.StoreSQLite:
		err = migrateSQLite(ctx, *path, logger)
	case config.StoreSpanner:
		err = migrateSpanner(ctx, *db, logger)
	default:
		err = fmt.Errorf("unknown driver %q", *driver)
	}
	if err != nil {
		logger.Error("migration failed", "driver", *driver, "error", err)
		os.Exit(1)
	}
}

func migrateSQLite(ctx context.Context, path string, logger *slog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	s, err := sqlitestore.Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("sqlite schema up to date", "path", path)
	return nil
}

func migrateSpanner(ctx context.Context, db string, logger *slog.Logger) error {
	if db == "" {
		return fmt.Errorf("-database is required (e.g. projects/p/instances/i/databases/catalog)")
	}
	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	n, err := spannerstore.ApplySchema(ctx, admin, db)
	if err != nil {
		return err
	}
	logger.Info("applied spanner DDL", "statements", n, "database", db)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
