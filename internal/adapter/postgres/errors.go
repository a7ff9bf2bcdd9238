package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taranenko/taskfeed/internal/domain"
)

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
func mapError(err error, path string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("document %s: %w", path, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("document %s: %w", path, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("document %s: %w", path, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("document %s: %w", path, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("document %s: %w", path, domain.ErrValidation)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("document %s: %w", path, domain.ErrConflict)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("document %s: %w", path, err)
}
