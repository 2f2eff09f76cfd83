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
	"github.com/roadwise/roadwise/internal/pkg/licensekey"
	"github.com/roadwise/roadwise/internal/pkg/logger"
	"github.com/roadwise/roadwise/internal/pkg/metrics"
)

// featureSets names the feature bundles a license key can carry. Activating
// a key grants every feature of its set to the organization.
var featureSets = map[string][]string{
	"starter": {
		"theory-exam-simulator",
	},
	"premium": {
		"theory-exam-simulator",
		"advanced-analytics",
		"automated-reminders",
	},
	"enterprise": {
		"theory-exam-simulator",
		"advanced-analytics",
		"automated-reminders",
		"route-replay",
		"fleet-telemetry",
	},
}

// LicenseService defines the interface for license key and entitlement
// operations
type LicenseService interface {
	GenerateKey(ctx context.Context, req dto.GenerateKeyRequest) (*models.LicenseKey, error)
	ListKeys(ctx context.Context) ([]*models.LicenseKey, error)
	ActivateKey(ctx context.Context, orgID, userID int64, rawKey string) (*dto.ActivationResponse, error)
	ListFeatures(ctx context.Context, orgID int64) ([]*models.LicenseFeature, error)
	ToggleFeature(ctx context.Context, orgID, changedBy int64, featureKey string, enabled bool) error
}

// licenseServiceImpl implements the LicenseService interface
type licenseServiceImpl struct {
	pool        *pgxpool.Pool
	licenseRepo *repositories.LicenseRepository
	historyRepo *repositories.HistoryRepository
	metrics     *metrics.Metrics
}

// NewLicenseService creates a new license service instance
func NewLicenseService(
	pool *pgxpool.Pool,
	licenseRepo *repositories.LicenseRepository,
	historyRepo *repositories.HistoryRepository,
	m *metrics.Metrics,
) LicenseService {
	return &licenseServiceImpl{
		pool:        pool,
		licenseRepo: licenseRepo,
		historyRepo: historyRepo,
		metrics:     m,
	}
}

// GenerateKey creates a new single-use license key for a feature set
func (s *licenseServiceImpl) GenerateKey(ctx context.Context, req dto.GenerateKeyRequest) (*models.LicenseKey, error) {
	if _, ok := featureSets[req.FeatureSet]; !ok {
		return nil, fmt.Errorf("%w: unknown feature set %q", apperrors.ErrValidationFailed, req.FeatureSet)
	}
	if !req.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: expiresAt must be in the future", apperrors.ErrValidationFailed)
	}

	raw, err := licensekey.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate license key: %w", err)
	}

	key := &models.LicenseKey{
		Key:        raw,
		FeatureSet: req.FeatureSet,
		ExpiresAt:  req.ExpiresAt,
	}
	if err := s.licenseRepo.CreateKey(ctx, key); err != nil {
		return nil, err
	}

	logger.Info().Str("featureSet", key.FeatureSet).Time("expiresAt", key.ExpiresAt).Msg("License key generated")
	return key, nil
}

// ListKeys retrieves all license keys
func (s *licenseServiceImpl) ListKeys(ctx context.Context) ([]*models.LicenseKey, error) {
	return s.licenseRepo.ListKeys(ctx)
}

// ActivateKey validates a key and binds it to the organization, granting its
// feature set. The checksum rejects mistyped keys before any lookup; the
// binding and the feature grants commit in one transaction.
func (s *licenseServiceImpl) ActivateKey(ctx context.Context, orgID, userID int64, rawKey string) (*dto.ActivationResponse, error) {
	normalized, err := licensekey.Validate(rawKey)
	if err != nil {
		s.metrics.IncrementLicenseActivation("invalid")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLicenseKeyInvalid, err)
	}

	key, err := s.licenseRepo.GetKeyByValue(ctx, normalized)
	if err != nil {
		s.metrics.IncrementLicenseActivation("not_found")
		return nil, err
	}

	if key.IsActivated() {
		s.metrics.IncrementLicenseActivation("already_used")
		return nil, apperrors.ErrLicenseKeyUsed
	}
	if key.IsExpired(time.Now()) {
		s.metrics.IncrementLicenseActivation("expired")
		return nil, apperrors.ErrLicenseExpired
	}

	features := featureSets[key.FeatureSet]

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.licenseRepo.ActivateKey(ctx, tx, key.ID, orgID, userID, time.Now()); err != nil {
			return err
		}
		for _, featureKey := range features {
			feature := &models.LicenseFeature{
				OrganizationID: orgID,
				FeatureKey:     featureKey,
				Enabled:        true,
				ExpiresAt:      key.ExpiresAt,
			}
			if err := s.licenseRepo.UpsertFeature(ctx, tx, feature); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncrementLicenseActivation("failed")
		return nil, err
	}

	for _, featureKey := range features {
		enabled := "true"
		appendHistory(ctx, s.historyRepo, models.HistoryEntityLicenseFeature, featureKey, "CREATE", nil, &enabled, userID)
	}

	s.metrics.IncrementLicenseActivation("success")
	logger.Info().
		Int64("orgID", orgID).
		Str("featureSet", key.FeatureSet).
		Msg("License key activated")

	return &dto.ActivationResponse{
		FeatureSet: key.FeatureSet,
		Features:   features,
		ExpiresAt:  key.ExpiresAt,
	}, nil
}

// ListFeatures retrieves the organization's licensed features
func (s *licenseServiceImpl) ListFeatures(ctx context.Context, orgID int64) ([]*models.LicenseFeature, error) {
	return s.licenseRepo.ListFeatures(ctx, orgID)
}

// ToggleFeature enables or disables a licensed feature and records the
// change in the configuration history.
func (s *licenseServiceImpl) ToggleFeature(ctx context.Context, orgID, changedBy int64, featureKey string, enabled bool) error {
	feature, err := s.licenseRepo.GetFeature(ctx, orgID, featureKey)
	if err != nil {
		return err
	}
	if feature.Enabled == enabled {
		return nil
	}

	if err := s.licenseRepo.SetFeatureEnabled(ctx, orgID, featureKey, enabled); err != nil {
		return err
	}

	oldValue := fmt.Sprintf("%t", feature.Enabled)
	newValue := fmt.Sprintf("%t", enabled)
	appendHistory(ctx, s.historyRepo, models.HistoryEntityLicenseFeature, featureKey, "UPDATE", &oldValue, &newValue, changedBy)

	logger.Info().
		Int64("orgID", orgID).
		Str("featureKey", featureKey).
		Bool("enabled", enabled).
		Msg("License feature toggled")
	return nil
}
