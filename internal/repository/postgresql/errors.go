package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a duplicate-key failure,
// optionally on one of the named constraints. The creation validators
// translate these into the same Conflict the pre-check query produces, so
// callers see one error regardless of which side of the race they hit.
func isUniqueViolation(err error, constraints ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
