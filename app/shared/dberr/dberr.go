// Package dberr classifies Postgres failures regardless of which driver
// produced them.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Code returns the SQLSTATE carried by err, or "" if err is not a Postgres error.
func Code(err error) string {
	var pgdErr pgdriver.Error
	if errors.As(err, &pgdErr) {
		return pgdErr.Field('C')
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	return ""
}

// Constraint returns the violated constraint name, when reported.
func Constraint(err error) string {
	var pgdErr pgdriver.Error
	if errors.As(err, &pgdErr) {
		return pgdErr.Field('n')
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.ConstraintName
	}
	return ""
}

// IsUniqueViolation reports whether err was raised by a unique constraint.
func IsUniqueViolation(err error) bool {
	return Code(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	return Code(err) == codeForeignKeyViolation
}

// IsIntegrityViolation reports any class 23 failure.
func IsIntegrityViolation(err error) bool {
	code := Code(err)
	return len(code) == 5 && code[:2] == "23"
}
