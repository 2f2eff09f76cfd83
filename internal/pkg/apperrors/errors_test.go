package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := &CustomError{Err: ErrVehicleNotFound, Message: "vehicle 12 not found"}

	assert.Equal(t, "vehicle 12 not found", err.Error())
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestCustomErrorFallsBackToWrappedMessage(t *testing.T) {
	err := &CustomError{Err: ErrValidationFailed}

	assert.Equal(t, ErrValidationFailed.Error(), err.Error())
	assert.True(t, errors.Is(err, ErrValidationFailed))
}
