package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    models.LessonStatus
		to      models.LessonStatus
		allowed bool
	}{
		{"scheduled to completed", models.LessonScheduled, models.LessonCompleted, true},
		{"scheduled to cancelled", models.LessonScheduled, models.LessonCancelled, true},
		{"scheduled to no-show", models.LessonScheduled, models.LessonNoShow, true},
		{"scheduled to scheduled", models.LessonScheduled, models.LessonScheduled, false},
		{"completed is terminal", models.LessonCompleted, models.LessonCancelled, false},
		{"cancelled is terminal", models.LessonCancelled, models.LessonScheduled, false},
		{"no-show is terminal", models.LessonNoShow, models.LessonCompleted, false},
		{"completed cannot be reopened", models.LessonCompleted, models.LessonScheduled, false},
		{"unknown target", models.LessonScheduled, models.LessonStatus("ARCHIVED"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidateSlot(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour)
	yesterday := time.Now().Add(-24 * time.Hour)

	assert.NoError(t, validateSlot(tomorrow, 30))
	assert.NoError(t, validateSlot(tomorrow, 90))
	assert.NoError(t, validateSlot(tomorrow, 180))

	assert.ErrorIs(t, validateSlot(tomorrow, 29), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateSlot(tomorrow, 181), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateSlot(tomorrow, 0), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateSlot(yesterday, 60), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateSlot(time.Time{}, 60), apperrors.ErrValidationFailed)
}
