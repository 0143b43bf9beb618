// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into user-friendly messages (e.g., converting
// a "unique violation" on the username constraint into the
// "Username already taken" payload).
package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a friendly category for Postgres SQLSTATE codes.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// MapCode maps a Postgres SQLSTATE string onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// Error is a structured view of a Postgres server error.
type Error struct {
	Code           Code
	DatabaseCode   string // original SQLSTATE
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into
// our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ErrCode reports the mapped Code for a given error, walking the error
// chain for either a *sqlerr.Error or a raw *pgconn.PgError.
// Unclassifiable errors report Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}
