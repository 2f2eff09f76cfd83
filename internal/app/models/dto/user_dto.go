package dto

import (
	"time"

	"github.com/roadwise/roadwise/internal/app/models"
)

// CreateUserRequest represents an admin request to create a user with its
// role sub-profile.
type CreateUserRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	Phone     *string         `json:"phone,omitempty"`
	RoleType  models.RoleType `json:"roleType" binding:"required"`

	// Student fields (required when roleType is STUDENT)
	CategoryID      *int64     `json:"categoryId,omitempty"`
	RequiredMinutes *int       `json:"requiredMinutes,omitempty"`
	MedicalCertAt   *time.Time `json:"medicalCertAt,omitempty"`

	// Instructor fields (required when roleType is INSTRUCTOR)
	HiredAt    *time.Time `json:"hiredAt,omitempty"`
	Categories []string   `json:"categories,omitempty"`
}

// UpdateUserRequest represents an update of user base data
type UpdateUserRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// StudentProgressResponse reports a student's training progress against the
// required hours of their licence category.
type StudentProgressResponse struct {
	StudentID        int64   `json:"studentId"`
	CategoryCode     string  `json:"categoryCode"`
	RequiredMinutes  int     `json:"requiredMinutes"`
	CompletedMinutes int     `json:"completedMinutes"`
	CompletedLessons int     `json:"completedLessons"`
	ProgressPercent  float64 `json:"progressPercent"`
}
