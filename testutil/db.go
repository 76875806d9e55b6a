// Package testutil provides shared helpers for integration tests.
// Every helper skips the calling test when TEST_DATABASE_URL is unset, so
// unit tests run without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
)

// DSNVar names the environment variable holding the test database URL.
const DSNVar = "TEST_DATABASE_URL"

// NewPool opens a pool on the test database and closes it when the test ends.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), dsn(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back when the test ends. Repos
// accept a pgx.Tx, so each test gets an isolated view of the schema.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB opens a database/sql handle on the test database for goose.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := open(dsn(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB is NewSQLDB for TestMain, where no *testing.T exists.
// It panics on error; the caller closes the handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := open(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return db
}

func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func dsn(t *testing.T) string {
	t.Helper()
	v := os.Getenv(DSNVar)
	if v == "" {
		t.Skip(DSNVar + " not set; skipping integration test")
	}
	return v
}
