package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/logger"
	"github.com/roadwise/roadwise/internal/pkg/metrics"
	"github.com/roadwise/roadwise/internal/pkg/rollout"
)

// FlagService defines the interface for feature flag management and
// evaluation
type FlagService interface {
	CreateFlag(ctx context.Context, changedBy int64, req dto.CreateFlagRequest) (*models.FeatureFlag, error)
	GetFlag(ctx context.Context, key string) (*models.FeatureFlag, error)
	ListFlags(ctx context.Context) ([]*models.FeatureFlag, error)
	UpdateFlag(ctx context.Context, changedBy int64, key string, req dto.UpdateFlagRequest) (*models.FeatureFlag, error)
	DeleteFlag(ctx context.Context, changedBy int64, key string) error
	SetOverride(ctx context.Context, changedBy int64, key string, req dto.SetOverrideRequest) error
	ListOverrides(ctx context.Context, key string) ([]*models.FlagOverride, error)
	DeleteOverride(ctx context.Context, changedBy int64, key string, userID int64) error
	Evaluate(ctx context.Context, key string, userID, orgID int64, role string) (*dto.EvaluationResponse, error)
	EvaluateAll(ctx context.Context, userID, orgID int64, role string) (*dto.FlagSetResponse, error)
}

// flagServiceImpl implements the FlagService interface
type flagServiceImpl struct {
	flagRepo    *repositories.FlagRepository
	licenseRepo *repositories.LicenseRepository
	userRepo    *repositories.UserRepository
	historyRepo *repositories.HistoryRepository
	metrics     *metrics.Metrics
}

// NewFlagService creates a new feature flag service instance
func NewFlagService(
	flagRepo *repositories.FlagRepository,
	licenseRepo *repositories.LicenseRepository,
	userRepo *repositories.UserRepository,
	historyRepo *repositories.HistoryRepository,
	m *metrics.Metrics,
) FlagService {
	return &flagServiceImpl{
		flagRepo:    flagRepo,
		licenseRepo: licenseRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		metrics:     m,
	}
}

// validateFlagDefinition checks the fields shared by create and update
func validateFlagDefinition(rolloutPercentage int, targetRoles []string) error {
	if rolloutPercentage < 0 || rolloutPercentage > 100 {
		return fmt.Errorf("%w: rolloutPercentage must be between 0 and 100", apperrors.ErrValidationFailed)
	}
	for _, role := range targetRoles {
		if !models.RoleType(role).IsValid() {
			return fmt.Errorf("%w: unknown target role %q", apperrors.ErrValidationFailed, role)
		}
	}
	return nil
}

// CreateFlag creates a feature flag and records the creation in the
// configuration history.
func (s *flagServiceImpl) CreateFlag(ctx context.Context, changedBy int64, req dto.CreateFlagRequest) (*models.FeatureFlag, error) {
	if err := validateFlagDefinition(req.RolloutPercentage, req.TargetRoles); err != nil {
		return nil, err
	}

	flag := &models.FeatureFlag{
		Key:               req.Key,
		Name:              req.Name,
		Description:       req.Description,
		Enabled:           req.Enabled,
		RolloutPercentage: req.RolloutPercentage,
		TargetRoles:       req.TargetRoles,
		Premium:           req.Premium,
	}
	if flag.TargetRoles == nil {
		flag.TargetRoles = []string{}
	}

	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, err
	}

	appendHistory(ctx, s.historyRepo, models.HistoryEntityFlag, flag.Key, "CREATE", nil, snapshotJSON(flag), changedBy)

	logger.Info().Str("key", flag.Key).Msg("Feature flag created")
	return flag, nil
}

// GetFlag retrieves a feature flag by key
func (s *flagServiceImpl) GetFlag(ctx context.Context, key string) (*models.FeatureFlag, error) {
	return s.flagRepo.GetByKey(ctx, key)
}

// ListFlags retrieves all feature flags
func (s *flagServiceImpl) ListFlags(ctx context.Context) ([]*models.FeatureFlag, error) {
	return s.flagRepo.GetAll(ctx)
}

// UpdateFlag updates a flag definition and records before and after
// snapshots in the configuration history. The key never changes.
func (s *flagServiceImpl) UpdateFlag(ctx context.Context, changedBy int64, key string, req dto.UpdateFlagRequest) (*models.FeatureFlag, error) {
	if err := validateFlagDefinition(req.RolloutPercentage, req.TargetRoles); err != nil {
		return nil, err
	}

	flag, err := s.flagRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	oldSnapshot := snapshotJSON(flag)

	flag.Name = req.Name
	flag.Description = req.Description
	flag.Enabled = req.Enabled
	flag.RolloutPercentage = req.RolloutPercentage
	flag.TargetRoles = req.TargetRoles
	if flag.TargetRoles == nil {
		flag.TargetRoles = []string{}
	}
	flag.Premium = req.Premium

	if err := s.flagRepo.Update(ctx, flag); err != nil {
		return nil, err
	}

	appendHistory(ctx, s.historyRepo, models.HistoryEntityFlag, key, "UPDATE", oldSnapshot, snapshotJSON(flag), changedBy)

	logger.Info().Str("key", key).Msg("Feature flag updated")
	return flag, nil
}

// DeleteFlag removes a flag and records the deletion with a final snapshot
func (s *flagServiceImpl) DeleteFlag(ctx context.Context, changedBy int64, key string) error {
	flag, err := s.flagRepo.GetByKey(ctx, key)
	if err != nil {
		return err
	}

	if err := s.flagRepo.Delete(ctx, key); err != nil {
		return err
	}

	appendHistory(ctx, s.historyRepo, models.HistoryEntityFlag, key, "DELETE", snapshotJSON(flag), nil, changedBy)

	logger.Info().Str("key", key).Msg("Feature flag deleted")
	return nil
}

// overrideSnapshot is the audit-log shape of a per-user override
type overrideSnapshot struct {
	UserID int64 `json:"userId"`
	Value  bool  `json:"value"`
}

// SetOverride forces a flag value for a single user. Override changes land
// in the configuration history under the flag's key.
func (s *flagServiceImpl) SetOverride(ctx context.Context, changedBy int64, key string, req dto.SetOverrideRequest) error {
	flag, err := s.flagRepo.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetUserByID(ctx, req.UserID); err != nil {
		return err
	}

	existing, err := s.flagRepo.GetOverride(ctx, flag.ID, req.UserID)
	if err != nil {
		return err
	}

	if err := s.flagRepo.SetOverride(ctx, flag.ID, req.UserID, *req.Value); err != nil {
		return err
	}

	var oldValue *string
	if existing != nil {
		oldValue = snapshotJSON(overrideSnapshot{UserID: req.UserID, Value: *existing})
	}
	newValue := snapshotJSON(overrideSnapshot{UserID: req.UserID, Value: *req.Value})
	appendHistory(ctx, s.historyRepo, models.HistoryEntityFlag, key, "UPDATE", oldValue, newValue, changedBy)

	return nil
}

// ListOverrides retrieves every override of a flag
func (s *flagServiceImpl) ListOverrides(ctx context.Context, key string) ([]*models.FlagOverride, error) {
	flag, err := s.flagRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.flagRepo.ListOverrides(ctx, flag.ID)
}

// DeleteOverride removes a forced flag value for a user
func (s *flagServiceImpl) DeleteOverride(ctx context.Context, changedBy int64, key string, userID int64) error {
	flag, err := s.flagRepo.GetByKey(ctx, key)
	if err != nil {
		return err
	}

	existing, err := s.flagRepo.GetOverride(ctx, flag.ID, userID)
	if err != nil {
		return err
	}

	if err := s.flagRepo.DeleteOverride(ctx, flag.ID, userID); err != nil {
		return err
	}

	var oldValue *string
	if existing != nil {
		oldValue = snapshotJSON(overrideSnapshot{UserID: userID, Value: *existing})
	}
	appendHistory(ctx, s.historyRepo, models.HistoryEntityFlag, key, "UPDATE", oldValue, nil, changedBy)

	return nil
}

// Evaluate resolves one flag for one user and reports which layer decided
func (s *flagServiceImpl) Evaluate(ctx context.Context, key string, userID, orgID int64, role string) (*dto.EvaluationResponse, error) {
	flag, err := s.flagRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	override, err := s.flagRepo.GetOverride(ctx, flag.ID, userID)
	if err != nil {
		return nil, err
	}

	licensed := false
	if flag.Premium {
		licensed, err = s.isLicensed(ctx, orgID, flag.Key)
		if err != nil {
			return nil, err
		}
	}

	result := rollout.Evaluate(rollout.Input{
		FlagKey:           flag.Key,
		Enabled:           flag.Enabled,
		RolloutPercentage: flag.RolloutPercentage,
		TargetRoles:       flag.TargetRoles,
		Premium:           flag.Premium,
		Licensed:          licensed,
		UserID:            userID,
		UserRole:          role,
		Override:          override,
	})

	s.metrics.IncrementFlagEvaluation(flag.Key, strconv.FormatBool(result.Value), string(result.Reason))

	return &dto.EvaluationResponse{
		Key:    flag.Key,
		Value:  result.Value,
		Reason: string(result.Reason),
		Bucket: result.Bucket,
	}, nil
}

// EvaluateAll resolves every flag for one user, the shape dashboards load
// on startup.
func (s *flagServiceImpl) EvaluateAll(ctx context.Context, userID, orgID int64, role string) (*dto.FlagSetResponse, error) {
	flags, err := s.flagRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.flagRepo.GetOverridesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	usable, err := s.licenseRepo.GetUsableFeatureKeys(ctx, orgID, time.Now())
	if err != nil {
		return nil, err
	}

	resp := &dto.FlagSetResponse{Flags: make(map[string]bool, len(flags))}
	for _, flag := range flags {
		var override *bool
		if v, ok := overrides[flag.ID]; ok {
			override = &v
		}

		result := rollout.Evaluate(rollout.Input{
			FlagKey:           flag.Key,
			Enabled:           flag.Enabled,
			RolloutPercentage: flag.RolloutPercentage,
			TargetRoles:       flag.TargetRoles,
			Premium:           flag.Premium,
			Licensed:          usable[flag.Key],
			UserID:            userID,
			UserRole:          role,
			Override:          override,
		})
		resp.Flags[flag.Key] = result.Value
	}

	return resp, nil
}

// isLicensed reports whether the organization holds a usable license
// feature for the flag key.
func (s *flagServiceImpl) isLicensed(ctx context.Context, orgID int64, featureKey string) (bool, error) {
	feature, err := s.licenseRepo.GetFeature(ctx, orgID, featureKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrLicenseFeatureNotFound) {
			return false, nil
		}
		return false, err
	}
	return feature.IsUsable(time.Now()), nil
}
