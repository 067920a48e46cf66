package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"taskdesk/internal/apperr"
)

// wrapErr classifies constraint violations from the driver into the
// error kinds handlers know how to translate. Anything unrecognized is
// returned as-is and surfaces as a generic failure.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	pgerr := new(pgconn.PgError)
	if !errors.As(err, &pgerr) {
		return err
	}
	switch pgerr.Code {
	case pgerrcode.ForeignKeyViolation:
		return apperr.Integrityf("%s", pgerr.ConstraintName)
	case pgerrcode.UniqueViolation:
		return apperr.Integrityf("%s", pgerr.ConstraintName)
	case pgerrcode.NotNullViolation:
		return apperr.Invalid(pgerr.ColumnName, "is required")
	}
	return err
}
