// pkg/store/store.go

// Package store reads and provisions the relational billing schema.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when no client_info row matches an invoice number.
var ErrNotFound = errors.New("store: invoice not found")

// Store wraps a billing database.
type Store struct {
	db      *sql.DB
	dialect *dialect
	logger  *slog.Logger
}

// dialect captures the per-driver differences: DDL, placeholder style and
// how a uniqueness violation is reported.
type dialect struct {
	driver string
	schema []string

	// constraintQuery returns a row when uq_invoice_number exists. Empty
	// when the constraint is declared inline.
	constraintQuery string
	addConstraint   string

	rebind          func(string) string
	uniqueViolation func(error) bool
	init            func(*sql.DB) error
}

var dialects = map[string]*dialect{
	"postgres": postgresDialect,
	"sqlite":   sqliteDialect,
}

// Open connects to the database named by driver ("postgres" or "sqlite").
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if d.init != nil {
		if err := d.init(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: init: %w", err)
		}
	}

	return &Store{db: db, dialect: d, logger: logger.With("driver", driver)}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// IsUniqueViolation reports whether err is a uniqueness constraint failure
// for this store's driver.
func (s *Store) IsUniqueViolation(err error) bool {
	return err != nil && s.dialect.uniqueViolation(err)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(query), args...)
	return err
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
}
