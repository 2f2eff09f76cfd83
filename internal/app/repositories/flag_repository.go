package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/dberrors"
)

const flagColumns = "id, key, name, description, enabled, rollout_percentage, target_roles, premium, created_at, updated_at"

// FlagRepository handles database operations for feature flags and their
// per-user overrides
type FlagRepository struct {
	db *pgxpool.Pool
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(db *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{db: db}
}

func scanFlag(row pgx.Row) (*models.FeatureFlag, error) {
	var f models.FeatureFlag
	err := row.Scan(
		&f.ID,
		&f.Key,
		&f.Name,
		&f.Description,
		&f.Enabled,
		&f.RolloutPercentage,
		&f.TargetRoles,
		&f.Premium,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if f.TargetRoles == nil {
		f.TargetRoles = []string{}
	}
	return &f, nil
}

// Create creates a new feature flag
func (r *FlagRepository) Create(ctx context.Context, flag *models.FeatureFlag) error {
	query := `
		INSERT INTO feature_flags (key, name, description, enabled, rollout_percentage, target_roles, premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		flag.Key, flag.Name, flag.Description, flag.Enabled,
		flag.RolloutPercentage, flag.TargetRoles, flag.Premium,
	).Scan(&flag.ID, &flag.CreatedAt, &flag.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "feature_flags_key_key") {
			return apperrors.ErrFlagAlreadyExists
		}
		return fmt.Errorf("error creating feature flag: %w", err)
	}

	return nil
}

// GetByKey retrieves a feature flag by key
func (r *FlagRepository) GetByKey(ctx context.Context, key string) (*models.FeatureFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM feature_flags WHERE key = $1`

	flag, err := scanFlag(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, fmt.Errorf("error retrieving feature flag: %w", err)
	}

	return flag, nil
}

// GetAll retrieves all feature flags ordered by key
func (r *FlagRepository) GetAll(ctx context.Context) ([]*models.FeatureFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM feature_flags ORDER BY key`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing feature flags: %w", err)
	}
	defer rows.Close()

	var flags []*models.FeatureFlag
	for rows.Next() {
		flag, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, flag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return flags, nil
}

// Update updates a feature flag definition. The key is immutable.
func (r *FlagRepository) Update(ctx context.Context, flag *models.FeatureFlag) error {
	query := `
		UPDATE feature_flags
		SET name = $1, description = $2, enabled = $3, rollout_percentage = $4,
		    target_roles = $5, premium = $6, updated_at = NOW()
		WHERE key = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		flag.Name, flag.Description, flag.Enabled, flag.RolloutPercentage,
		flag.TargetRoles, flag.Premium, flag.Key)
	if err != nil {
		return fmt.Errorf("error updating feature flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFlagNotFound
	}

	return nil
}

// Delete deletes a feature flag by key. Overrides go with it via cascade.
func (r *FlagRepository) Delete(ctx context.Context, key string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM feature_flags WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("error deleting feature flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFlagNotFound
	}

	return nil
}

// Count returns the total number of feature flags
func (r *FlagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feature_flags`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting feature flags: %w", err)
	}
	return count, nil
}

// GetOverride retrieves the forced value of a flag for a user, returning
// nil when no override exists.
func (r *FlagRepository) GetOverride(ctx context.Context, flagID, userID int64) (*bool, error) {
	var value bool
	err := r.db.QueryRow(ctx, `
		SELECT value FROM flag_overrides WHERE flag_id = $1 AND user_id = $2`,
		flagID, userID).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving flag override: %w", err)
	}

	return &value, nil
}

// GetOverridesForUser retrieves all overrides of a user keyed by flag ID
func (r *FlagRepository) GetOverridesForUser(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT flag_id, value FROM flag_overrides WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing flag overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[int64]bool)
	for rows.Next() {
		var flagID int64
		var value bool
		if err := rows.Scan(&flagID, &value); err != nil {
			return nil, err
		}
		overrides[flagID] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// ListOverrides retrieves every override of a flag, oldest first
func (r *FlagRepository) ListOverrides(ctx context.Context, flagID int64) ([]*models.FlagOverride, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, flag_id, user_id, value, updated_at
		FROM flag_overrides WHERE flag_id = $1 ORDER BY id`, flagID)
	if err != nil {
		return nil, fmt.Errorf("error listing flag overrides: %w", err)
	}
	defer rows.Close()

	overrides := make([]*models.FlagOverride, 0)
	for rows.Next() {
		var o models.FlagOverride
		if err := rows.Scan(&o.ID, &o.FlagID, &o.UserID, &o.Value, &o.UpdatedAt); err != nil {
			return nil, err
		}
		overrides = append(overrides, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// SetOverride creates or replaces the forced value of a flag for a user
func (r *FlagRepository) SetOverride(ctx context.Context, flagID, userID int64, value bool) error {
	query := `
		INSERT INTO flag_overrides (flag_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (flag_id, user_id) DO UPDATE SET value = EXCLUDED.value
	`

	_, err := r.db.Exec(ctx, query, flagID, userID, value)
	if err != nil {
		return fmt.Errorf("error setting flag override: %w", err)
	}

	return nil
}

// DeleteOverride removes the forced value of a flag for a user
func (r *FlagRepository) DeleteOverride(ctx context.Context, flagID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM flag_overrides WHERE flag_id = $1 AND user_id = $2`, flagID, userID)
	if err != nil {
		return fmt.Errorf("error deleting flag override: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOverrideNotFound
	}

	return nil
}
