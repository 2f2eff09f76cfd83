package services

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/auth"
	"github.com/roadwise/roadwise/internal/pkg/logger"
	"github.com/roadwise/roadwise/internal/pkg/metrics"
)

// Services contains all service implementations
type Services struct {
	Auth      AuthService
	User      UserService
	Lesson    LessonService
	Vehicle   VehicleService
	Flag      FlagService
	License   LicenseService
	Setting   SettingService
	Dashboard DashboardService
}

// NewServices creates all services wired to the given repositories
func NewServices(pool *pgxpool.Pool, repos *repositories.Repositories, jwtService *auth.JWTService, m *metrics.Metrics) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, repos.Token, repos.Organization, jwtService),
		User:      NewUserService(repos.User, repos.Vehicle, repos.Token),
		Lesson:    NewLessonService(pool, repos.Lesson, repos.User, repos.Vehicle),
		Vehicle:   NewVehicleService(repos.Vehicle),
		Flag:      NewFlagService(repos.Flag, repos.License, repos.User, repos.History, m),
		License:   NewLicenseService(pool, repos.License, repos.History, m),
		Setting:   NewSettingService(repos.Setting, repos.History),
		Dashboard: NewDashboardService(repos.User, repos.Lesson, repos.Vehicle, repos.Flag),
	}
}

// snapshotJSON marshals a configuration entity for the audit log. Returns
// nil when there is nothing to snapshot.
func snapshotJSON(v interface{}) *string {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal audit snapshot")
		return nil
	}
	s := string(data)
	return &s
}

// appendHistory records a configuration change; audit failures are logged
// but never fail the mutation that triggered them.
func appendHistory(ctx context.Context, historyRepo *repositories.HistoryRepository, entityType models.HistoryEntityType, entityKey, action string, oldValue, newValue *string, changedBy int64) {
	entry := &models.ConfigurationHistory{
		EntityType: entityType,
		EntityKey:  entityKey,
		Action:     action,
		OldValue:   oldValue,
		NewValue:   newValue,
		ChangedBy:  changedBy,
	}
	if err := historyRepo.Append(ctx, entry); err != nil {
		logger.Error().Err(err).
			Str("entityType", string(entityType)).
			Str("entityKey", entityKey).
			Msg("Failed to append configuration history")
	}
}
