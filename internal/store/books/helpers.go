package books

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrConflict = errors.New("book conflict")
	ErrInvalid  = errors.New("invalid book")
)

const (
	sqlstateUniqueViolation = "23505"
	sqlstateCheckViolation  = "23514"
)

// sqlstate extracts the SQLSTATE from either supported driver's error type.
func sqlstate(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

// IsUniqueViolation checks if error is a unique constraint violation
func IsUniqueViolation(err error) bool {
	code, _ := sqlstate(err)
	return code == sqlstateUniqueViolation
}

// mapError translates driver errors into the package sentinels.
// Anything unrecognized is returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	switch code, constraint := sqlstate(err); code {
	case sqlstateUniqueViolation:
		if constraint == "" {
			constraint = "books_isbn_key"
		}
		return fmt.Errorf("%w: %s", ErrConflict, constraint)
	case sqlstateCheckViolation:
		return fmt.Errorf("%w: %s", ErrInvalid, constraint)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an unanchored LIKE pattern that matches s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
