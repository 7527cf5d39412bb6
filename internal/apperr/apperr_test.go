package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"kanboard/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	cases := map[apperr.Code]int{
		apperr.CodeNotFound:          http.StatusNotFound,
		apperr.CodeValidationFailure: http.StatusBadRequest,
		apperr.CodeInvalidScope:      http.StatusUnprocessableEntity,
		apperr.CodeStoreUnavailable:  http.StatusServiceUnavailable,
		apperr.CodeDuplicateRequest:  http.StatusConflict,
		apperr.CodeUnknown:           http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, code.HTTPStatus(), string(code))
	}
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", apperr.NotFound("Card not found"))

	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	assert.Equal(t, "Card not found", apperr.MessageOf(err))
	assert.True(t, errors.Is(err, apperr.New(apperr.CodeNotFound, "")))
}

func TestCodeOf_ForeignError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, apperr.CodeUnknown, apperr.CodeOf(err))
	assert.Equal(t, "Internal server error", apperr.MessageOf(err))
}

func TestUnavailable_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Unavailable("Failed to retrieve boards", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperr.CodeStoreUnavailable, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}
