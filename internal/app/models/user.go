package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	OrganizationID int64      `json:"organizationId" db:"organization_id" example:"1"`          // Organization (driving school) the user belongs to
	Email          string     `json:"email" db:"email" example:"user@roadwise.app"`             // User's email address
	Password       string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName      string     `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName       string     `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	Phone          *string    `json:"phone,omitempty" db:"phone" example:"+49123456789"`        // Contact phone number (nullable)
	RoleType       RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                // User's role (SUPER_ADMIN, INSTRUCTOR or STUDENT)
	IsActive       bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt      time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"userId" db:"user_id"`
	CategoryID      int64      `json:"categoryId" db:"category_id"`                // Licence category the student is training for
	RequiredMinutes int        `json:"requiredMinutes" db:"required_minutes"`      // Training minutes required before the practical exam
	MedicalCertAt   *time.Time `json:"medicalCertAt,omitempty" db:"medical_cert_at"` // Date of the medical certificate (nullable)
	User            *User      `json:"user,omitempty"`                             // Relation, no db tag
	Category        *Category  `json:"category,omitempty"`                         // Relation, no db tag
}

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	HiredAt    time.Time `json:"hiredAt" db:"hired_at"`
	Categories []string  `json:"categories" db:"categories"` // Licence category codes the instructor teaches
	User       *User     `json:"user,omitempty"`             // Relation, no db tag
}

// LessonCounter tracks a student's accumulated training time based on the
// 'lesson_counters' table. CompletedMinutes only grows when a lesson is
// marked COMPLETED.
type LessonCounter struct {
	StudentID        int64     `json:"studentId" db:"student_id"`
	CompletedMinutes int       `json:"completedMinutes" db:"completed_minutes"`
	CompletedLessons int       `json:"completedLessons" db:"completed_lessons"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
