// Package seed creates the default data a fresh deployment needs: the
// default organization, a super admin account and the baseline feature
// flags and settings.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/auth"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

const (
	defaultOrgSlug    = "roadwise"
	defaultAdminEmail = "admin@roadwise.app"
)

// CreateDefaultData seeds the default organization, admin user, feature
// flags and system settings. Existing rows are left untouched, so the
// function is safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	orgRepo := repositories.NewOrganizationRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)
	flagRepo := repositories.NewFlagRepository(dbPool)
	settingRepo := repositories.NewSettingRepository(dbPool)

	logger.Info().Msg("Checking/creating default data...")
	var finalErr error

	// --- Default organization --- //
	org := &models.Organization{Name: "Roadwise Driving School", Slug: defaultOrgSlug}
	err := orgRepo.Create(ctx, org)
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		existing, errGet := orgRepo.GetBySlug(ctx, defaultOrgSlug)
		if errGet != nil {
			logger.Error().Err(errGet).Msg("Error loading default organization")
			return errors.Join(finalErr, errGet)
		}
		org = existing
	} else if err != nil {
		logger.Error().Err(err).Msg("Error creating default organization")
		return errors.Join(finalErr, err)
	}

	// --- Default super admin --- //
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		logger.Info().Msg("Creating default admin user...")

		hashedPassword, err := auth.HashPassword("Admin123!")
		if err != nil {
			logger.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &models.User{
				OrganizationID: org.ID,
				Email:          defaultAdminEmail,
				Password:       hashedPassword,
				FirstName:      "System",
				LastName:       "Administrator",
				RoleType:       models.RoleSuperAdmin,
				IsActive:       true,
			}

			adminID, err := userRepo.CreateUser(ctx, admin)
			if err != nil {
				logger.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				logger.Info().Int64("adminID", adminID).Msg("Default admin user created")
			}
		}
	}

	// --- Baseline feature flags --- //
	flags := []*models.FeatureFlag{
		{
			Key:               "online-booking",
			Name:              "Online lesson booking",
			Description:       "Lets students book lessons from the student dashboard",
			Enabled:           true,
			RolloutPercentage: 100,
			TargetRoles:       []string{},
		},
		{
			Key:               "theory-exam-simulator",
			Name:              "Theory exam simulator",
			Description:       "Practice theory exams for students",
			Enabled:           true,
			RolloutPercentage: 100,
			TargetRoles:       []string{string(models.RoleStudent)},
			Premium:           true,
		},
		{
			Key:               "advanced-analytics",
			Name:              "Advanced analytics",
			Description:       "Fleet and progress analytics on the admin dashboard",
			Enabled:           false,
			RolloutPercentage: 0,
			TargetRoles:       []string{string(models.RoleSuperAdmin)},
			Premium:           true,
		},
	}
	for _, flag := range flags {
		err := flagRepo.Create(ctx, flag)
		if err != nil && !errors.Is(err, apperrors.ErrFlagAlreadyExists) {
			logger.Error().Err(err).Str("key", flag.Key).Msg("Error seeding feature flag")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Baseline system settings --- //
	settings := []struct {
		key, value, description string
	}{
		{"booking.cancellation-window-hours", "24", "Hours before start a lesson may still be cancelled"},
		{"lesson.default-duration-minutes", "45", "Default lesson length offered when scheduling"},
	}
	for _, s := range settings {
		_, err := settingRepo.GetSetting(ctx, s.key)
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			if err := settingRepo.UpsertSetting(ctx, s.key, s.value, s.description, 0); err != nil {
				logger.Error().Err(err).Str("key", s.key).Msg("Error seeding system setting")
				finalErr = errors.Join(finalErr, err)
			}
		} else if err != nil {
			logger.Error().Err(err).Str("key", s.key).Msg("Error checking system setting")
			finalErr = errors.Join(finalErr, err)
		}
	}

	logger.Info().Msg("Default data check finished")
	return finalErr
}
