package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roadwise/roadwise/internal/app/models"
)

func TestBuildProgress(t *testing.T) {
	student := &models.Student{
		ID:              3,
		RequiredMinutes: 900,
		Category:        &models.Category{Code: "B"},
	}
	counter := &models.LessonCounter{CompletedMinutes: 450, CompletedLessons: 10}

	progress := buildProgress(student, counter)
	assert.Equal(t, int64(3), progress.StudentID)
	assert.Equal(t, "B", progress.CategoryCode)
	assert.Equal(t, 900, progress.RequiredMinutes)
	assert.Equal(t, 450, progress.CompletedMinutes)
	assert.Equal(t, 10, progress.CompletedLessons)
	assert.InDelta(t, 50.0, progress.ProgressPercent, 0.001)
}

func TestBuildProgressCapsAtHundredPercent(t *testing.T) {
	student := &models.Student{RequiredMinutes: 100}
	counter := &models.LessonCounter{CompletedMinutes: 250}

	progress := buildProgress(student, counter)
	assert.Equal(t, 100.0, progress.ProgressPercent)
}

func TestBuildProgressZeroRequirement(t *testing.T) {
	student := &models.Student{RequiredMinutes: 0}
	counter := &models.LessonCounter{CompletedMinutes: 45}

	progress := buildProgress(student, counter)
	assert.Equal(t, 0.0, progress.ProgressPercent)
}

func TestUserServiceSnapshotJSON(t *testing.T) {
	snap := snapshotJSON(map[string]string{"key": "value"})
	assert.NotNil(t, snap)
	assert.JSONEq(t, `{"key":"value"}`, *snap)

	assert.Nil(t, snapshotJSON(nil))
}
