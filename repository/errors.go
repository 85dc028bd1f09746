// Package repository holds the gorm backed persistence of the platform.
package repository

import (
	"errors"

	apperrors "script9/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgInvalidTextRep     = "22P02"
)

// translate maps a gorm error onto the application error kinds.
// Missing rows and malformed ids become NotFound, constraint violations BadRequest,
// the rest DatabaseError.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(what + " not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeDuplicate, what+" already exists", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeSlotUnavailable, "time slot is not available", err)
		case pgUniqueViolation:
			return apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeDuplicate, what+" already exists", err)
		case pgInvalidTextRep:
			// a key that cannot be cast to uuid cannot name an existing row
			return apperrors.NewAppError(apperrors.KindNotFound, apperrors.ErrCodeDBNotFound, what+" not found", err)
		}
	}
	return apperrors.Database("failed to access "+what, err)
}

// IsDuplicate reports whether err is a translated unique violation.
func IsDuplicate(err error) bool {
	appErr := apperrors.GetAppError(err)
	return appErr != nil && appErr.Code == apperrors.ErrCodeDuplicate
}
