package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	tcpg "github.com/mpapenbr/trackday-instructions/testsupport/tcpostgres"
)

// InitTestDb provides a migrated database with empty tables. Uses the
// database at TESTDB_URL when set, otherwise a testcontainer. Skipped in
// short mode.
func InitTestDb(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	var pool *pgxpool.Pool
	if os.Getenv("TESTDB_URL") != "" {
		pool = tcpg.SetupExternalTestDb()
	} else {
		pool = tcpg.SetupTestDb()
	}
	if err := pgx.BeginFunc(context.Background(), pool, func(tx pgx.Tx) error {
		tcpg.ClearAllTables(pool)
		return nil
	}); err != nil {
		t.Fatalf("initTestDb: %v", err)
	}
	return pool
}
