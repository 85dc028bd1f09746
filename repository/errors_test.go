package repository

import (
	"errors"
	"fmt"
	"testing"

	apperrors "script9/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, translate(nil, "booking"))
}

func TestTranslateNotFound(t *testing.T) {
	err := translate(gorm.ErrRecordNotFound, "booking")

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Contains(t, err.Error(), "booking not found")
}

func TestTranslateDuplicate(t *testing.T) {
	err := translate(gorm.ErrDuplicatedKey, "review")

	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
	assert.True(t, IsDuplicate(err))
}

func TestTranslateExclusionViolation(t *testing.T) {
	raw := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})

	err := translate(raw, "booking")

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.KindBadRequest, appErr.Kind)
	assert.Equal(t, apperrors.ErrCodeSlotUnavailable, appErr.Code)
}

func TestTranslateOtherErrorsAreDatabaseErrors(t *testing.T) {
	cause := errors.New("connection refused")

	err := translate(cause, "conversation")

	assert.True(t, apperrors.IsKind(err, apperrors.KindDatabase))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsDuplicate(err))
}

func TestTranslateMalformedKeyIsNotFound(t *testing.T) {
	raw := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})

	err := translate(raw, "booking")

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, 404, appErr.Status())
	assert.Contains(t, err.Error(), "booking not found")
}
