package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/roamwyth/backend/migrations"
	"github.com/roamwyth/backend/testutil"
)

// TestMain brings the test database schema up to date once per test binary.
// Without TEST_DATABASE_URL only the pgxmock and miniredis tests run.
func TestMain(m *testing.M) {
	dsn := os.Getenv(testutil.DSNVar)
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	if _, err := migrations.Up(context.Background(), db); err != nil {
		log.Fatalf("TestMain: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
