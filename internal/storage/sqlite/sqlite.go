// Package sqlite provides a SQLite-backed implementation of storage.Store
// and of the membership directory.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/membership"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	_ storage.Store     = (*SQLiteStore)(nil)
	_ membership.Oracle = (*SQLiteStore)(nil)
)

// Write transactions start with BEGIN IMMEDIATE so the member list and the
// shares read inside one cannot change until it commits.
const dsnParams = "?_txlock=immediate" +
	"&_pragma=foreign_keys(1)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)"

// SQLiteStore implements storage.Store and membership.Oracle using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + dsnParams
	if err := RunMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WithTx runs fn in a BEGIN IMMEDIATE transaction.
func (s *SQLiteStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.withTx(ctx, nil, fn)
}

// WithReadTx runs fn in a deferred, read-only transaction.
func (s *SQLiteStore) WithReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.withTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (s *SQLiteStore) withTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// q returns the transaction carried by ctx, or the pool.
func (s *SQLiteStore) q(ctx context.Context) queryer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}
