// pkg/store/schema.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// constraintStep marks where in a dialect's schema the named uniqueness
// constraint on client_info.invoice_number is ensured. invoice_details
// references that column, so it has to come before it.
const constraintStep = "-- ensure uq_invoice_number"

// EnsureSchema creates the billing tables and indexes. Every statement is
// existence-checked, so running it again is a no-op.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if stmt == constraintStep {
			if err := s.ensureConstraint(ctx); err != nil {
				return err
			}
			continue
		}
		if err := s.exec(ctx, stmt); err != nil {
			return fmt.Errorf("store: schema: %w", err)
		}
	}
	s.logger.Debug("schema ready")
	return nil
}

func (s *Store) ensureConstraint(ctx context.Context) error {
	if s.dialect.constraintQuery == "" {
		return nil
	}

	var name string
	err := s.queryRow(ctx, s.dialect.constraintQuery).Scan(&name)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("store: inspect constraint: %w", err)
	}

	if err := s.exec(ctx, s.dialect.addConstraint); err != nil {
		return fmt.Errorf("store: add constraint: %w", err)
	}
	s.logger.Info("added constraint", "name", "uq_invoice_number")
	return nil
}
