package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/dberrors"
)

const licenseKeyColumns = "id, key, feature_set, expires_at, organization_id, activated_at, activated_by, created_at"

// LicenseRepository handles database operations for license keys and the
// per-organization feature entitlements they unlock
type LicenseRepository struct {
	db *pgxpool.Pool
}

// NewLicenseRepository creates a new license repository
func NewLicenseRepository(db *pgxpool.Pool) *LicenseRepository {
	return &LicenseRepository{db: db}
}

func scanLicenseKey(row pgx.Row) (*models.LicenseKey, error) {
	var k models.LicenseKey
	err := row.Scan(
		&k.ID,
		&k.Key,
		&k.FeatureSet,
		&k.ExpiresAt,
		&k.OrganizationID,
		&k.ActivatedAt,
		&k.ActivatedBy,
		&k.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// CreateKey stores a newly generated license key
func (r *LicenseRepository) CreateKey(ctx context.Context, key *models.LicenseKey) error {
	query := `
		INSERT INTO license_keys (key, feature_set, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, key.Key, key.FeatureSet, key.ExpiresAt).
		Scan(&key.ID, &key.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "license_keys_key_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating license key: %w", err)
	}

	return nil
}

// GetKeyByValue retrieves a license key by its value
func (r *LicenseRepository) GetKeyByValue(ctx context.Context, key string) (*models.LicenseKey, error) {
	query := `SELECT ` + licenseKeyColumns + ` FROM license_keys WHERE key = $1`

	licenseKey, err := scanLicenseKey(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLicenseKeyNotFound
		}
		return nil, fmt.Errorf("error retrieving license key: %w", err)
	}

	return licenseKey, nil
}

// ListKeys retrieves all license keys, newest first
func (r *LicenseRepository) ListKeys(ctx context.Context) ([]*models.LicenseKey, error) {
	query := `SELECT ` + licenseKeyColumns + ` FROM license_keys ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing license keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.LicenseKey
	for rows.Next() {
		key, err := scanLicenseKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// ActivateKey binds an unused key to an organization within the given
// transaction. The WHERE guard keeps a concurrently activated key from
// being claimed twice.
func (r *LicenseRepository) ActivateKey(ctx context.Context, tx pgx.Tx, keyID, orgID, userID int64, activatedAt time.Time) error {
	query := `
		UPDATE license_keys
		SET organization_id = $1, activated_by = $2, activated_at = $3
		WHERE id = $4 AND organization_id IS NULL
	`

	cmdTag, err := tx.Exec(ctx, query, orgID, userID, activatedAt, keyID)
	if err != nil {
		return fmt.Errorf("error activating license key: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLicenseKeyUsed
	}

	return nil
}

// UpsertFeature grants or refreshes a licensed feature for an organization
// within the given transaction. Re-activation extends the expiry and
// re-enables the feature.
func (r *LicenseRepository) UpsertFeature(ctx context.Context, tx pgx.Tx, feature *models.LicenseFeature) error {
	query := `
		INSERT INTO license_features (organization_id, feature_key, enabled, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, feature_key)
		DO UPDATE SET enabled = EXCLUDED.enabled, expires_at = GREATEST(license_features.expires_at, EXCLUDED.expires_at)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		feature.OrganizationID, feature.FeatureKey, feature.Enabled, feature.ExpiresAt,
	).Scan(&feature.ID)
	if err != nil {
		return fmt.Errorf("error upserting license feature: %w", err)
	}

	return nil
}

// GetFeature retrieves a licensed feature of an organization by key
func (r *LicenseRepository) GetFeature(ctx context.Context, orgID int64, featureKey string) (*models.LicenseFeature, error) {
	var f models.LicenseFeature
	err := r.db.QueryRow(ctx, `
		SELECT id, organization_id, feature_key, enabled, expires_at
		FROM license_features
		WHERE organization_id = $1 AND feature_key = $2`,
		orgID, featureKey).
		Scan(&f.ID, &f.OrganizationID, &f.FeatureKey, &f.Enabled, &f.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLicenseFeatureNotFound
		}
		return nil, fmt.Errorf("error retrieving license feature: %w", err)
	}

	return &f, nil
}

// ListFeatures retrieves all licensed features of an organization
func (r *LicenseRepository) ListFeatures(ctx context.Context, orgID int64) ([]*models.LicenseFeature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, organization_id, feature_key, enabled, expires_at
		FROM license_features
		WHERE organization_id = $1
		ORDER BY feature_key`, orgID)
	if err != nil {
		return nil, fmt.Errorf("error listing license features: %w", err)
	}
	defer rows.Close()

	var features []*models.LicenseFeature
	for rows.Next() {
		var f models.LicenseFeature
		if err := rows.Scan(&f.ID, &f.OrganizationID, &f.FeatureKey, &f.Enabled, &f.ExpiresAt); err != nil {
			return nil, err
		}
		features = append(features, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return features, nil
}

// SetFeatureEnabled toggles a licensed feature of an organization
func (r *LicenseRepository) SetFeatureEnabled(ctx context.Context, orgID int64, featureKey string, enabled bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE license_features SET enabled = $1
		WHERE organization_id = $2 AND feature_key = $3`,
		enabled, orgID, featureKey)
	if err != nil {
		return fmt.Errorf("error toggling license feature: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLicenseFeatureNotFound
	}

	return nil
}

// GetUsableFeatureKeys retrieves the keys of features that are enabled and
// not yet expired for an organization. Used by flag evaluation.
func (r *LicenseRepository) GetUsableFeatureKeys(ctx context.Context, orgID int64, now time.Time) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT feature_key FROM license_features
		WHERE organization_id = $1 AND enabled = TRUE AND expires_at > $2`,
		orgID, now)
	if err != nil {
		return nil, fmt.Errorf("error listing usable features: %w", err)
	}
	defer rows.Close()

	usable := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		usable[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return usable, nil
}
