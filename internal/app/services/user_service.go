package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/auth"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// UserService defines the interface for user management operations
type UserService interface {
	CreateUser(ctx context.Context, orgID int64, req dto.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, orgID, id int64) (*models.User, error)
	ListUsers(ctx context.Context, orgID int64, role models.RoleType, search string, page, size int) ([]*models.User, dto.PaginationInfo, error)
	UpdateUser(ctx context.Context, orgID, id int64, req dto.UpdateUserRequest) (*models.User, error)
	SetUserActive(ctx context.Context, orgID, id int64, active bool) error
	DeleteUser(ctx context.Context, orgID, id int64) error
	GetStudentProgress(ctx context.Context, orgID, studentID int64) (*dto.StudentProgressResponse, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo    *repositories.UserRepository
	vehicleRepo *repositories.VehicleRepository
	tokenRepo   *repositories.TokenRepository
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo *repositories.UserRepository,
	vehicleRepo *repositories.VehicleRepository,
	tokenRepo *repositories.TokenRepository,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		tokenRepo:   tokenRepo,
	}
}

// CreateUser creates a user with its role sub-profile. Students must name a
// licence category and required training minutes; instructors a hire date.
func (s *userServiceImpl) CreateUser(ctx context.Context, orgID int64, req dto.CreateUserRequest) (*models.User, error) {
	if !req.RoleType.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, req.RoleType)
	}
	if err := s.validateRoleFields(ctx, req); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		OrganizationID: orgID,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Password:       hashed,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Phone:          req.Phone,
		RoleType:       req.RoleType,
		IsActive:       true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if err := s.createRoleProfile(ctx, user, req); err != nil {
		// The account is unusable without its sub-profile, take it back out
		if delErr := s.userRepo.DeleteUser(ctx, userID); delErr != nil {
			logger.Error().Err(delErr).Int64("userID", userID).Msg("Failed to remove user after profile creation failure")
		}
		return nil, err
	}

	logger.Info().Int64("userID", userID).Str("role", string(user.RoleType)).Msg("User created")
	return user, nil
}

func (s *userServiceImpl) validateRoleFields(ctx context.Context, req dto.CreateUserRequest) error {
	switch req.RoleType {
	case models.RoleStudent:
		if req.CategoryID == nil {
			return fmt.Errorf("%w: categoryId is required for students", apperrors.ErrValidationFailed)
		}
		if req.RequiredMinutes == nil || *req.RequiredMinutes <= 0 {
			return fmt.Errorf("%w: requiredMinutes must be positive", apperrors.ErrValidationFailed)
		}
		if _, err := s.vehicleRepo.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			return err
		}
	case models.RoleInstructor:
		if req.HiredAt == nil {
			return fmt.Errorf("%w: hiredAt is required for instructors", apperrors.ErrValidationFailed)
		}
		if len(req.Categories) == 0 {
			return fmt.Errorf("%w: instructors need at least one licence category", apperrors.ErrValidationFailed)
		}
	}
	return nil
}

func (s *userServiceImpl) createRoleProfile(ctx context.Context, user *models.User, req dto.CreateUserRequest) error {
	switch user.RoleType {
	case models.RoleStudent:
		return s.userRepo.CreateStudent(ctx, &models.Student{
			UserID:          user.ID,
			CategoryID:      *req.CategoryID,
			RequiredMinutes: *req.RequiredMinutes,
			MedicalCertAt:   req.MedicalCertAt,
		})
	case models.RoleInstructor:
		return s.userRepo.CreateInstructor(ctx, &models.Instructor{
			UserID:     user.ID,
			HiredAt:    *req.HiredAt,
			Categories: req.Categories,
		})
	}
	return nil
}

// GetUser retrieves a user, scoped to the caller's organization
func (s *userServiceImpl) GetUser(ctx context.Context, orgID, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.OrganizationID != orgID {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers retrieves a page of the organization's users
func (s *userServiceImpl) ListUsers(ctx context.Context, orgID int64, role models.RoleType, search string, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.userRepo.ListUsers(ctx, orgID, role, search, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return users, helpers.NewPaginationInfo(total, page, limit), nil
}

// UpdateUser updates a user's base data
func (s *userServiceImpl) UpdateUser(ctx context.Context, orgID, id int64, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Phone = req.Phone

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetUserActive enables or disables an account. Disabling also revokes all
// refresh tokens so open sessions die with the account.
func (s *userServiceImpl) SetUserActive(ctx context.Context, orgID, id int64, active bool) error {
	if _, err := s.GetUser(ctx, orgID, id); err != nil {
		return err
	}

	if err := s.userRepo.SetUserActive(ctx, id, active); err != nil {
		return err
	}

	if !active {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
			logger.Error().Err(err).Int64("userID", id).Msg("Failed to revoke tokens of disabled user")
		}
	}

	logger.Info().Int64("userID", id).Bool("active", active).Msg("User active state changed")
	return nil
}

// DeleteUser removes a user. Users referenced by lessons cannot be deleted,
// deactivate them instead.
func (s *userServiceImpl) DeleteUser(ctx context.Context, orgID, id int64) error {
	if _, err := s.GetUser(ctx, orgID, id); err != nil {
		return err
	}
	return s.userRepo.DeleteUser(ctx, id)
}

// GetStudentProgress reports a student's accumulated training time against
// the required minutes of their licence category.
func (s *userServiceImpl) GetStudentProgress(ctx context.Context, orgID, studentID int64) (*dto.StudentProgressResponse, error) {
	student, err := s.userRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.User == nil || student.User.OrganizationID != orgID {
		return nil, apperrors.ErrStudentNotFound
	}

	counter, err := s.userRepo.GetLessonCounter(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return buildProgress(student, counter), nil
}

// buildProgress computes a progress report. The percentage is capped at 100,
// extra lessons past the requirement do not overflow the gauge.
func buildProgress(student *models.Student, counter *models.LessonCounter) *dto.StudentProgressResponse {
	resp := &dto.StudentProgressResponse{
		StudentID:        student.ID,
		RequiredMinutes:  student.RequiredMinutes,
		CompletedMinutes: counter.CompletedMinutes,
		CompletedLessons: counter.CompletedLessons,
	}
	if student.Category != nil {
		resp.CategoryCode = student.Category.Code
	}

	if student.RequiredMinutes > 0 {
		percent := float64(counter.CompletedMinutes) / float64(student.RequiredMinutes) * 100
		if percent > 100 {
			percent = 100
		}
		resp.ProgressPercent = percent
	}

	return resp
}
