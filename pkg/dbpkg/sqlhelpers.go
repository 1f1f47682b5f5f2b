// Package dbpkg provides helpers to open and test the account database.
package dbpkg

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

const (
	pingTimeout  = 5 * time.Second
	maxOpenConns = 10
)

// Setup opens a connection pool for driver and checks it is reachable.
func Setup(driver, source string) (*sql.DB, error) {
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// SetupTX begins a transaction that is rolled back when the test ends.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := Setup(driver, source)
	if err != nil {
		t.Fatalf("dbpkg.Setup(%q) failed: %v", driver, err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("tx.Rollback() failed: %v", err)
		}

		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})

	return tx
}

// SQLInterface is the subset of *sql.DB and *sql.Tx the repositories use.
type SQLInterface interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
