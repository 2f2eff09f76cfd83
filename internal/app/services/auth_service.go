package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/auth"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	orgRepo    *repositories.OrganizationRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	orgRepo *repositories.OrganizationRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		orgRepo:    orgRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. Credential failures
// and unknown emails both map to ErrInvalidCredentials so the response does
// not reveal which accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Int64("userID", user.ID).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")
	return tokens, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and
// a fresh pair is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token owner: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			// Logging out with an unknown token is not an error worth surfacing
			return nil
		}
		return err
	}
	return nil
}

// GetProfile returns the role-shaped profile of a user. Students carry
// their category and progress, instructors their teaching categories.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.UserProfile{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Phone:          user.Phone,
		RoleType:       string(user.RoleType),
		OrganizationID: user.OrganizationID,
	}

	if org, err := s.orgRepo.GetByID(ctx, user.OrganizationID); err == nil {
		profile.OrganizationName = org.Name
	}

	switch user.RoleType {
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if student.Category != nil {
			profile.CategoryCode = &student.Category.Code
		}
		profile.RequiredMinutes = &student.RequiredMinutes

		counter, err := s.userRepo.GetLessonCounter(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		profile.CompletedMinutes = &counter.CompletedMinutes

	case models.RoleInstructor:
		instructor, err := s.userRepo.GetInstructorByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile.Categories = instructor.Categories
	}

	return profile, nil
}

// issueTokens generates a token pair and persists the refresh token
func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
