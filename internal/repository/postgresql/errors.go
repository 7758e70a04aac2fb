package postgresql

import (
	"errors"
	"fmt"
	"net"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// translateError wraps err with op and marks connectivity failures as dependency errors.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return apperr.Dependency(fmt.Errorf("%s: %w", op, err))
	}

	return fmt.Errorf("%s: %w", op, err)
}

func pgErrorCode(err error) (code string, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// isUniqueViolation matches any unique violation when constraint is empty.
func isUniqueViolation(err error, constraint string) bool {
	code, name, ok := pgErrorCode(err)
	return ok && code == uniqueViolationCode && (constraint == "" || name == constraint)
}

func isForeignKeyViolation(err error) bool {
	code, _, ok := pgErrorCode(err)
	return ok && code == foreignKeyViolationCode
}

func isCheckViolation(err error) bool {
	code, _, ok := pgErrorCode(err)
	return ok && code == checkViolationCode
}
