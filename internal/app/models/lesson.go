package models

import "time"

// Lesson defines the lesson model based on the 'lessons' table. A lesson is
// a single driving session between one instructor and one student in one
// vehicle.
type Lesson struct {
	ID              int64        `json:"id" db:"id"`
	OrganizationID  int64        `json:"organizationId" db:"organization_id"`
	StudentID       int64        `json:"studentId" db:"student_id"`
	InstructorID    int64        `json:"instructorId" db:"instructor_id"`
	VehicleID       int64        `json:"vehicleId" db:"vehicle_id"`
	StartsAt        time.Time    `json:"startsAt" db:"starts_at"`
	DurationMinutes int          `json:"durationMinutes" db:"duration_minutes"`
	Status          LessonStatus `json:"status" db:"status" example:"SCHEDULED"`
	Notes           *string      `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
	Student         *Student     `json:"student,omitempty"`    // Relation, no db tag
	Instructor      *Instructor  `json:"instructor,omitempty"` // Relation, no db tag
	Vehicle         *Vehicle     `json:"vehicle,omitempty"`    // Relation, no db tag
}

// EndsAt returns the scheduled end of the lesson.
func (l *Lesson) EndsAt() time.Time {
	return l.StartsAt.Add(time.Duration(l.DurationMinutes) * time.Minute)
}
