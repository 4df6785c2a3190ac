package spannerstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// DDLStatements returns the schema as individual statements in file order.
func DDLStatements() ([]string, error) {
	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var out []string
	for _, f := range files {
		b, err := schemaFS.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		out = append(out, splitDDL(string(b))...)
	}
	return out, nil
}

// ApplySchema runs the DDL against database through the admin API.
func ApplySchema(ctx context.Context, admin *database.DatabaseAdminClient, db string) (int, error) {
	stmts, err := DDLStatements()
	if err != nil {
		return 0, err
	}
	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return len(stmts), nil
}

func splitDDL(sql string) []string {
	// Normalize line endings for Windows-authored files.
	sql = strings.ReplaceAll(sql, "\r\n", "\n")
	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
