package pgerrors

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique constraint violation
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
