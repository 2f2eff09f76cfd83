package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/db"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// LessonService defines the interface for lesson scheduling operations
type LessonService interface {
	ScheduleLesson(ctx context.Context, orgID int64, req dto.CreateLessonRequest) (*models.Lesson, error)
	GetLesson(ctx context.Context, orgID, id int64) (*models.Lesson, error)
	ListLessons(ctx context.Context, orgID, callerUserID int64, callerRole models.RoleType, filter dto.LessonFilter, page, size int) ([]*models.Lesson, dto.PaginationInfo, error)
	RescheduleLesson(ctx context.Context, orgID, id int64, req dto.UpdateLessonRequest) (*models.Lesson, error)
	UpdateLessonStatus(ctx context.Context, orgID, id int64, req dto.UpdateLessonStatusRequest) (*models.Lesson, error)
}

// lessonServiceImpl implements the LessonService interface
type lessonServiceImpl struct {
	pool        *pgxpool.Pool
	lessonRepo  *repositories.LessonRepository
	userRepo    *repositories.UserRepository
	vehicleRepo *repositories.VehicleRepository
}

// NewLessonService creates a new lesson service instance
func NewLessonService(
	pool *pgxpool.Pool,
	lessonRepo *repositories.LessonRepository,
	userRepo *repositories.UserRepository,
	vehicleRepo *repositories.VehicleRepository,
) LessonService {
	return &lessonServiceImpl{
		pool:        pool,
		lessonRepo:  lessonRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
	}
}

// Lesson length bounds in minutes
const (
	minLessonMinutes = 30
	maxLessonMinutes = 180
)

// CanTransition reports whether a lesson may move from one status to
// another. SCHEDULED is the only non-terminal state.
func CanTransition(from, to models.LessonStatus) bool {
	if from != models.LessonScheduled {
		return false
	}
	switch to {
	case models.LessonCompleted, models.LessonCancelled, models.LessonNoShow:
		return true
	}
	return false
}

// ScheduleLesson validates the slot and participants and creates a
// SCHEDULED lesson
func (s *lessonServiceImpl) ScheduleLesson(ctx context.Context, orgID int64, req dto.CreateLessonRequest) (*models.Lesson, error) {
	if err := validateSlot(req.StartsAt, req.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.validateParticipants(ctx, orgID, req.StudentID, req.InstructorID, req.VehicleID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		OrganizationID:  orgID,
		StudentID:       req.StudentID,
		InstructorID:    req.InstructorID,
		VehicleID:       req.VehicleID,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Status:          models.LessonScheduled,
		Notes:           req.Notes,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("lessonID", lesson.ID).
		Int64("studentID", lesson.StudentID).
		Int64("instructorID", lesson.InstructorID).
		Msg("Lesson scheduled")
	return lesson, nil
}

// validateParticipants checks that student, instructor and vehicle exist and
// belong to the organization, and that the vehicle is in service.
func (s *lessonServiceImpl) validateParticipants(ctx context.Context, orgID, studentID, instructorID, vehicleID int64) error {
	student, err := s.userRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.User == nil || student.User.OrganizationID != orgID {
		return apperrors.ErrStudentNotFound
	}

	instructor, err := s.userRepo.GetInstructorByID(ctx, instructorID)
	if err != nil {
		return err
	}
	if instructor.User == nil || instructor.User.OrganizationID != orgID {
		return apperrors.ErrInstructorNotFound
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.OrganizationID != orgID {
		return apperrors.ErrVehicleNotFound
	}
	if !vehicle.IsActive {
		return fmt.Errorf("%w: vehicle %s is out of service", apperrors.ErrValidationFailed, vehicle.Registration)
	}

	return nil
}

// GetLesson retrieves a lesson, scoped to the caller's organization
func (s *lessonServiceImpl) GetLesson(ctx context.Context, orgID, id int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson.OrganizationID != orgID {
		return nil, apperrors.ErrLessonNotFound
	}
	return lesson, nil
}

func validateDuration(minutes int) error {
	if minutes < minLessonMinutes || minutes > maxLessonMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			apperrors.ErrValidationFailed, minLessonMinutes, maxLessonMinutes)
	}
	return nil
}

func validateSlot(startsAt time.Time, minutes int) error {
	if err := validateDuration(minutes); err != nil {
		return err
	}
	if !startsAt.After(time.Now()) {
		return fmt.Errorf("%w: startsAt must be in the future", apperrors.ErrValidationFailed)
	}
	return nil
}

// ListLessons retrieves a page of the organization's lessons. Students and
// instructors only ever see their own lessons, whatever the filter says.
func (s *lessonServiceImpl) ListLessons(ctx context.Context, orgID, callerUserID int64, callerRole models.RoleType, filter dto.LessonFilter, page, size int) ([]*models.Lesson, dto.PaginationInfo, error) {
	switch callerRole {
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, callerUserID)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		filter.StudentID = student.ID
	case models.RoleInstructor:
		instructor, err := s.userRepo.GetInstructorByUserID(ctx, callerUserID)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		filter.InstructorID = instructor.ID
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)

	lessons, total, err := s.lessonRepo.List(ctx, orgID, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return lessons, helpers.NewPaginationInfo(total, page, limit), nil
}

// RescheduleLesson moves a lesson to a new slot or vehicle. Only SCHEDULED
// lessons can be rescheduled.
func (s *lessonServiceImpl) RescheduleLesson(ctx context.Context, orgID, id int64, req dto.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.GetLesson(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if lesson.Status != models.LessonScheduled {
		return nil, apperrors.ErrInvalidLessonTransition
	}
	if err := validateSlot(req.StartsAt, req.DurationMinutes); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OrganizationID != orgID {
		return nil, apperrors.ErrVehicleNotFound
	}

	lesson.VehicleID = req.VehicleID
	lesson.StartsAt = req.StartsAt
	lesson.DurationMinutes = req.DurationMinutes
	lesson.Notes = req.Notes

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// UpdateLessonStatus transitions a lesson to a terminal state. Completing a
// lesson credits its minutes to the student's counter; status change and
// counter update commit together or not at all.
func (s *lessonServiceImpl) UpdateLessonStatus(ctx context.Context, orgID, id int64, req dto.UpdateLessonStatusRequest) (*models.Lesson, error) {
	lesson, err := s.GetLesson(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(lesson.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidLessonTransition, lesson.Status, req.Status)
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.lessonRepo.UpdateStatus(ctx, tx, id, req.Status, req.Notes); err != nil {
			return err
		}
		if req.Status == models.LessonCompleted {
			return s.userRepo.IncrementLessonCounter(ctx, tx, lesson.StudentID, lesson.DurationMinutes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lesson.Status = req.Status
	if req.Notes != nil {
		lesson.Notes = req.Notes
	}

	logger.Info().
		Int64("lessonID", id).
		Str("status", string(req.Status)).
		Msg("Lesson status updated")
	return lesson, nil
}
