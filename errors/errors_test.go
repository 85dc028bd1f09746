package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:      http.StatusBadRequest,
		KindUnauthorized:    http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindTooManyRequests: http.StatusTooManyRequests,
		KindBadGateway:      http.StatusBadGateway,
		KindDatabase:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, NewAppError(kind, ErrCodeValidation, "x", nil).Status(), kind)
	}
}

func TestGetAppErrorThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := Database("load booking", cause)
	wrapped := fmt.Errorf("service: %w", appErr)

	got := GetAppError(wrapped)

	assert.Same(t, appErr, got)
	assert.True(t, IsKind(wrapped, KindDatabase))
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestGetAppErrorPlainError(t *testing.T) {
	assert.Nil(t, GetAppError(errors.New("plain")))
	assert.False(t, IsAppError(errors.New("plain")))
}
