package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
)

// Postgres error codes the repositories translate into application errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translatePgError maps constraint violations and missing rows onto the
// application's sentinel errors. Unrecognized errors pass through.
func translatePgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ErrDuplicate
		case pgForeignKeyViolation:
			return apperrors.ErrConflict
		}
	}
	return err
}
