package pgerrors

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	err := pkgerrors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")
	require.True(t, IsUniqueViolation(err))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsUniqueViolation(pkgerrors.New("boom")))
}
