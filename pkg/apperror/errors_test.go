package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsKind(NewValidationError("amount", "must not be negative"), KindValidation))
	assert.True(t, IsKind(NewInsufficientPaymentError("900.00", "800.00"), KindInsufficientPayment))
	assert.True(t, IsKind(NewInvalidCouponError("BOGUS"), KindInvalidCoupon))
	assert.True(t, IsKind(NewConflictError("busy"), KindConflict))
	assert.True(t, IsKind(NewNotFoundError("Service"), KindNotFound))

	assert.False(t, IsKind(NewNotFoundError("Service"), KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestCollaboratorErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCollaboratorError("Catalog lookup", cause)

	assert.True(t, IsKind(err, KindCollaborator))
	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Catalog lookup")
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NewInvalidCouponError("BOGUS")
	wrapped := fmt.Errorf("applying coupon: %w", inner)

	assert.True(t, IsKind(wrapped, KindInvalidCoupon))
	assert.True(t, IsAppError(wrapped))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(NewBadRequestError("nope"))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	// Plain errors are normalized to an internal AppError
	appErr = GetAppError(errors.New("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
}
