package errors

import (
	"net/http"
	"testing"

	"roster/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	wrapped := ErrEmailConflict.WrapMessage("email already registered")

	assert.True(t, errors.Is(wrapped, ErrEmailConflict))

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "EMAIL_CONFLICT", appErr.ErrorCode())
}

func TestBaseError_WithDetailsDoesNotMutateOriginal(t *testing.T) {
	detailed := ErrInternal.WithDetails("goroutine dump")

	assert.Equal(t, "goroutine dump", detailed.Details())
	assert.Empty(t, ErrInternal.Details())
	assert.Equal(t, ErrInternal.Message(), detailed.Message())
}

func TestConflictVariantsShareContract(t *testing.T) {
	// The pre-check conflict and the insert-race conflict must be
	// indistinguishable except for the human message.
	assert.Equal(t, ErrEmailConflict.HTTPCode(), ErrEmailConflictRace.HTTPCode())
	assert.Equal(t, ErrEmailConflict.ErrorCode(), ErrEmailConflictRace.ErrorCode())
	assert.Equal(t, ErrEmailConflict.Label(), ErrEmailConflictRace.Label())
	assert.Equal(t, ErrEmailConflict.Field(), ErrEmailConflictRace.Field())
	assert.NotEqual(t, ErrEmailConflict.Message(), ErrEmailConflictRace.Message())
}

func TestStorageError_ExposesCauseInternally(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	storageErr := NewStorageError(cause, "failed to find user by email")

	assert.Equal(t, http.StatusServiceUnavailable, storageErr.HTTPCode())
	assert.True(t, errors.Is(storageErr, cause))
	// The client-facing message never carries the cause.
	assert.NotContains(t, storageErr.Message(), "connection refused")
	assert.Contains(t, storageErr.Error(), "connection refused")
}

func TestValidationError_JoinsMessages(t *testing.T) {
	vErr := NewValidationError([]string{"Email address is required", "Password is required"})

	assert.Equal(t, "Email address is required; Password is required", vErr.Message())
	assert.Len(t, vErr.Messages(), 2)

	empty := NewValidationError(nil)
	assert.Equal(t, "Invalid input provided", empty.Message())
}
