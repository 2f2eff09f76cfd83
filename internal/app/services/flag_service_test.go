package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roadwise/roadwise/internal/pkg/apperrors"
)

func TestValidateFlagDefinition(t *testing.T) {
	assert.NoError(t, validateFlagDefinition(0, nil))
	assert.NoError(t, validateFlagDefinition(100, []string{}))
	assert.NoError(t, validateFlagDefinition(25, []string{"STUDENT", "INSTRUCTOR"}))

	assert.ErrorIs(t, validateFlagDefinition(-1, nil), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateFlagDefinition(101, nil), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateFlagDefinition(50, []string{"MANAGER"}), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateFlagDefinition(50, []string{"STUDENT", "student"}), apperrors.ErrValidationFailed)
}

func TestSnapshotJSON(t *testing.T) {
	got := snapshotJSON(overrideSnapshot{UserID: 42, Value: true})
	if assert.NotNil(t, got) {
		assert.JSONEq(t, `{"userId":42,"value":true}`, *got)
	}

	assert.Nil(t, snapshotJSON(nil))
}
