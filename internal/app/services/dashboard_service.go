package services

import (
	"context"
	"time"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
)

const upcomingLessonLimit = 10

// DashboardService assembles the role-specific dashboard views
type DashboardService interface {
	AdminDashboard(ctx context.Context, orgID int64) (*dto.AdminDashboard, error)
	InstructorDashboard(ctx context.Context, orgID, userID int64) (*dto.InstructorDashboard, error)
	StudentDashboard(ctx context.Context, orgID, userID int64) (*dto.StudentDashboard, error)
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	userRepo    *repositories.UserRepository
	lessonRepo  *repositories.LessonRepository
	vehicleRepo *repositories.VehicleRepository
	flagRepo    *repositories.FlagRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(
	userRepo *repositories.UserRepository,
	lessonRepo *repositories.LessonRepository,
	vehicleRepo *repositories.VehicleRepository,
	flagRepo *repositories.FlagRepository,
) DashboardService {
	return &dashboardServiceImpl{
		userRepo:    userRepo,
		lessonRepo:  lessonRepo,
		vehicleRepo: vehicleRepo,
		flagRepo:    flagRepo,
	}
}

// AdminDashboard aggregates organization-wide counts for the super-admin
func (s *dashboardServiceImpl) AdminDashboard(ctx context.Context, orgID int64) (*dto.AdminDashboard, error) {
	usersByRole, err := s.userRepo.CountUsersByRole(ctx, orgID)
	if err != nil {
		return nil, err
	}

	lessonsThisWeek, err := s.lessonRepo.CountByStatusSince(ctx, orgID, helpers.StartOfWeek(time.Now()))
	if err != nil {
		return nil, err
	}

	activeVehicles, err := s.vehicleRepo.CountActive(ctx, orgID)
	if err != nil {
		return nil, err
	}

	flagCount, err := s.flagRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		UsersByRole:     usersByRole,
		LessonsThisWeek: lessonsThisWeek,
		ActiveVehicles:  activeVehicles,
		FeatureFlags:    flagCount,
	}, nil
}

// InstructorDashboard shapes the working view for the calling instructor
func (s *dashboardServiceImpl) InstructorDashboard(ctx context.Context, orgID, userID int64) (*dto.InstructorDashboard, error) {
	instructor, err := s.userRepo.GetInstructorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dayStart := helpers.StartOfDay(time.Now())
	dayEnd := dayStart.Add(24 * time.Hour)

	todayLessons, err := s.lessonRepo.ListUpcoming(ctx, orgID, dto.LessonFilter{
		InstructorID: instructor.ID,
		From:         &dayStart,
		To:           &dayEnd,
	}, upcomingLessonLimit)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.lessonRepo.ListUpcoming(ctx, orgID, dto.LessonFilter{
		InstructorID: instructor.ID,
		From:         &dayEnd,
	}, upcomingLessonLimit)
	if err != nil {
		return nil, err
	}

	studentCount, err := s.lessonRepo.CountDistinctStudents(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}

	return &dto.InstructorDashboard{
		TodayLessons:    emptyIfNil(todayLessons),
		UpcomingLessons: emptyIfNil(upcoming),
		StudentCount:    studentCount,
	}, nil
}

// StudentDashboard shapes the progress view for the calling student
func (s *dashboardServiceImpl) StudentDashboard(ctx context.Context, orgID, userID int64) (*dto.StudentDashboard, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counter, err := s.userRepo.GetLessonCounter(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upcoming, err := s.lessonRepo.ListUpcoming(ctx, orgID, dto.LessonFilter{
		StudentID: student.ID,
		From:      &now,
	}, upcomingLessonLimit)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboard{
		Progress:        *buildProgress(student, counter),
		UpcomingLessons: emptyIfNil(upcoming),
	}, nil
}

// emptyIfNil keeps dashboard lesson lists rendering as [] rather than null
func emptyIfNil(lessons []*models.Lesson) []*models.Lesson {
	if lessons == nil {
		return []*models.Lesson{}
	}
	return lessons
}
