package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Typed store failures surfaced by every repository. The pipeline maps
// these to wire-level errors; nothing above the repository layer inspects
// driver errors directly.
var (
	ErrNotFound    = errors.New("repository: not found")
	ErrConflict    = errors.New("repository: conflict")
	ErrUnavailable = errors.New("repository: store unavailable")
)

const pqUniqueViolation = "23505"

// translate normalises driver errors into the typed store failures.
// Uniqueness races are resolved by the database constraint, so a losing
// concurrent insert surfaces here as ErrConflict.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrConflict
	}
	return err
}
