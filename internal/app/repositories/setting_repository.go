package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
)

// SettingRepository handles database operations for system settings and
// per-user preferences
type SettingRepository struct {
	db *pgxpool.Pool
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{db: db}
}

const settingColumns = "id, key, value, description, updated_by, created_at, updated_at"

// GetSetting retrieves a system setting by key
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	err := r.db.QueryRow(ctx, `
		SELECT `+settingColumns+` FROM system_settings WHERE key = $1`, key).
		Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSettingNotFound
		}
		return nil, fmt.Errorf("error retrieving setting: %w", err)
	}

	return &s, nil
}

// ListSettings retrieves all system settings ordered by key
func (r *SettingRepository) ListSettings(ctx context.Context) ([]*models.SystemSetting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+settingColumns+` FROM system_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("error listing settings: %w", err)
	}
	defer rows.Close()

	var settings []*models.SystemSetting
	for rows.Next() {
		var s models.SystemSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpsertSetting creates or replaces a system setting
func (r *SettingRepository) UpsertSetting(ctx context.Context, key, value, description string, updatedBy int64) error {
	query := `
		INSERT INTO system_settings (key, value, description, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, description = EXCLUDED.description,
		              updated_by = EXCLUDED.updated_by, updated_at = NOW()
	`

	// Seeded settings carry no author, stored as NULL
	_, err := r.db.Exec(ctx, query, key, value, description, helpers.GetNullInt64(updatedBy))
	if err != nil {
		return fmt.Errorf("error upserting setting: %w", err)
	}

	return nil
}

// DeleteSetting removes a system setting by key
func (r *SettingRepository) DeleteSetting(ctx context.Context, key string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM system_settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("error deleting setting: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSettingNotFound
	}

	return nil
}

// GetPreference retrieves a preference of a user by key
func (r *SettingRepository) GetPreference(ctx context.Context, userID int64, key string) (*models.UserPreference, error) {
	var p models.UserPreference
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, key, value, updated_at
		FROM user_preferences
		WHERE user_id = $1 AND key = $2`, userID, key).
		Scan(&p.ID, &p.UserID, &p.Key, &p.Value, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("error retrieving preference: %w", err)
	}

	return &p, nil
}

// ListPreferences retrieves all preferences of a user
func (r *SettingRepository) ListPreferences(ctx context.Context, userID int64) ([]*models.UserPreference, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, key, value, updated_at
		FROM user_preferences
		WHERE user_id = $1
		ORDER BY key`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.UserPreference
	for rows.Next() {
		var p models.UserPreference
		if err := rows.Scan(&p.ID, &p.UserID, &p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prefs = append(prefs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prefs, nil
}

// UpsertPreference creates or replaces a preference of a user
func (r *SettingRepository) UpsertPreference(ctx context.Context, userID int64, key, value string) error {
	query := `
		INSERT INTO user_preferences (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, userID, key, value)
	if err != nil {
		return fmt.Errorf("error upserting preference: %w", err)
	}

	return nil
}
