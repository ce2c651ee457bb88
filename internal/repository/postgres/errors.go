package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/lostfound-server/internal/model"
)

const uniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name when err is a
// unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// wrapError reports every failure the caller did not map itself as a storage
// error, whether the server rejected the statement or it never arrived.
func wrapError(op string, err error) error {
	if errors.Is(err, model.ErrStorage) {
		return err
	}

	return &model.StorageError{Op: op, Err: err}
}
