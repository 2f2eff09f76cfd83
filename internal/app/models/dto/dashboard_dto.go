package dto

import "github.com/roadwise/roadwise/internal/app/models"

// AdminDashboard aggregates organization-wide counts for the super-admin view
type AdminDashboard struct {
	UsersByRole     map[string]int64 `json:"usersByRole"`
	LessonsThisWeek map[string]int64 `json:"lessonsThisWeek"` // Keyed by lesson status
	ActiveVehicles  int64            `json:"activeVehicles"`
	FeatureFlags    int64            `json:"featureFlags"`
}

// InstructorDashboard shapes the instructor's working view
type InstructorDashboard struct {
	TodayLessons    []*models.Lesson `json:"todayLessons"`
	UpcomingLessons []*models.Lesson `json:"upcomingLessons"`
	StudentCount    int64            `json:"studentCount"`
}

// StudentDashboard shapes the student's progress view
type StudentDashboard struct {
	Progress        StudentProgressResponse `json:"progress"`
	UpcomingLessons []*models.Lesson        `json:"upcomingLessons"`
}
