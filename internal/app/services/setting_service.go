package services

import (
	"context"
	"errors"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// SettingService defines the interface for system settings, user
// preferences and the configuration history
type SettingService interface {
	GetSetting(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSettings(ctx context.Context) ([]*models.SystemSetting, error)
	UpsertSetting(ctx context.Context, changedBy int64, key string, req dto.UpsertSettingRequest) error
	DeleteSetting(ctx context.Context, changedBy int64, key string) error
	GetPreference(ctx context.Context, userID int64, key string) (*models.UserPreference, error)
	ListPreferences(ctx context.Context, userID int64) ([]*models.UserPreference, error)
	UpsertPreference(ctx context.Context, userID int64, key, value string) error
	ListHistory(ctx context.Context, filter dto.HistoryFilter, page, size int) ([]*models.ConfigurationHistory, dto.PaginationInfo, error)
}

// settingServiceImpl implements the SettingService interface
type settingServiceImpl struct {
	settingRepo *repositories.SettingRepository
	historyRepo *repositories.HistoryRepository
}

// NewSettingService creates a new setting service instance
func NewSettingService(settingRepo *repositories.SettingRepository, historyRepo *repositories.HistoryRepository) SettingService {
	return &settingServiceImpl{
		settingRepo: settingRepo,
		historyRepo: historyRepo,
	}
}

// GetSetting retrieves a system setting by key
func (s *settingServiceImpl) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	return s.settingRepo.GetSetting(ctx, key)
}

// ListSettings retrieves all system settings
func (s *settingServiceImpl) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.settingRepo.ListSettings(ctx)
}

// UpsertSetting creates or replaces a setting value and records the change.
// A first write is audited as CREATE, later writes as UPDATE with the old
// value attached.
func (s *settingServiceImpl) UpsertSetting(ctx context.Context, changedBy int64, key string, req dto.UpsertSettingRequest) error {
	action := "UPDATE"
	var oldValue *string

	existing, err := s.settingRepo.GetSetting(ctx, key)
	switch {
	case err == nil:
		if existing.Value == req.Value {
			return nil
		}
		oldValue = &existing.Value
	case errors.Is(err, apperrors.ErrSettingNotFound):
		action = "CREATE"
	default:
		return err
	}

	if err := s.settingRepo.UpsertSetting(ctx, key, req.Value, req.Description, changedBy); err != nil {
		return err
	}

	newValue := req.Value
	appendHistory(ctx, s.historyRepo, models.HistoryEntitySetting, key, action, oldValue, &newValue, changedBy)

	logger.Info().Str("key", key).Str("action", action).Msg("System setting written")
	return nil
}

// DeleteSetting removes a setting and records the deletion with its last
// value.
func (s *settingServiceImpl) DeleteSetting(ctx context.Context, changedBy int64, key string) error {
	existing, err := s.settingRepo.GetSetting(ctx, key)
	if err != nil {
		return err
	}

	if err := s.settingRepo.DeleteSetting(ctx, key); err != nil {
		return err
	}

	appendHistory(ctx, s.historyRepo, models.HistoryEntitySetting, key, "DELETE", &existing.Value, nil, changedBy)

	logger.Info().Str("key", key).Msg("System setting deleted")
	return nil
}

// GetPreference retrieves a preference of the calling user
func (s *settingServiceImpl) GetPreference(ctx context.Context, userID int64, key string) (*models.UserPreference, error) {
	return s.settingRepo.GetPreference(ctx, userID, key)
}

// ListPreferences retrieves all preferences of the calling user
func (s *settingServiceImpl) ListPreferences(ctx context.Context, userID int64) ([]*models.UserPreference, error) {
	return s.settingRepo.ListPreferences(ctx, userID)
}

// UpsertPreference creates or replaces a preference of the calling user.
// Preferences are owner-scoped and not audited.
func (s *settingServiceImpl) UpsertPreference(ctx context.Context, userID int64, key, value string) error {
	return s.settingRepo.UpsertPreference(ctx, userID, key, value)
}

// ListHistory retrieves a page of the configuration history, newest first
func (s *settingServiceImpl) ListHistory(ctx context.Context, filter dto.HistoryFilter, page, size int) ([]*models.ConfigurationHistory, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	entries, total, err := s.historyRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return entries, helpers.NewPaginationInfo(total, page, limit), nil
}
