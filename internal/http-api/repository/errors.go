package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a violated unique index.
// Duplicate prevention relies on the database constraints rather than the
// check-then-insert fast path, so callers translate this to their own
// conflict sentinel.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
