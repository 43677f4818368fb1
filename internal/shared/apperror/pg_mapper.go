package apperror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally restricted to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return isPgCode(err, pgUniqueViolation, constraint, "duplicate key value")
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	return isPgCode(err, pgForeignKeyViolation, "", "violates foreign key constraint")
}

func isPgCode(err error, code, constraint, fallback string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, fallback) && (constraint == "" || strings.Contains(errMsg, constraint))
}

// MapStorageError translates generic storage failures. notFound is returned
// for gorm.ErrRecordNotFound; anything unrecognised passes through.
func MapStorageError(err error, notFound *AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound != nil {
			return notFound
		}
		return ErrNotFound
	}
	if IsForeignKeyViolation(err) {
		return Wrap(err, ErrReferenceNotFound.Code, ErrReferenceNotFound.Message, ErrReferenceNotFound.HTTPStatus)
	}
	if IsUniqueViolation(err, "") {
		return Wrap(err, ErrConflict.Code, ErrConflict.Message, ErrConflict.HTTPStatus)
	}
	return err
}
