package dto

import (
	"time"

	"github.com/roadwise/roadwise/internal/app/models"
)

// CreateLessonRequest represents a request to schedule a lesson
type CreateLessonRequest struct {
	StudentID       int64     `json:"studentId" binding:"required,min=1"`
	InstructorID    int64     `json:"instructorId" binding:"required,min=1"`
	VehicleID       int64     `json:"vehicleId" binding:"required,min=1"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Notes           *string   `json:"notes,omitempty"`
}

// UpdateLessonRequest represents a reschedule of an existing lesson
type UpdateLessonRequest struct {
	VehicleID       int64     `json:"vehicleId" binding:"required,min=1"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Notes           *string   `json:"notes,omitempty"`
}

// UpdateLessonStatusRequest represents a lesson status transition
type UpdateLessonStatusRequest struct {
	Status models.LessonStatus `json:"status" binding:"required"`
	Notes  *string             `json:"notes,omitempty"`
}

// LessonFilter holds the optional list filters parsed from query parameters
type LessonFilter struct {
	StudentID    int64
	InstructorID int64
	Status       models.LessonStatus
	From         *time.Time
	To           *time.Time
}
