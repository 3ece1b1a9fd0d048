// Package testutil provides shared helpers for integration tests.
// Helpers skip automatically when TEST_DATABASE_URL is not set, so unit tests
// run without a database.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"tour-planner-service/internal/platform/db"
)

// NewMigratedDB opens the database named by TEST_DATABASE_URL and applies all
// migrations. The connection is closed when the test finishes.
func NewMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	sqlDB, err := db.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("testutil.NewMigratedDB: open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(ctx, sqlDB); err != nil {
		t.Fatalf("testutil.NewMigratedDB: migrate: %v", err)
	}

	return sqlDB
}
