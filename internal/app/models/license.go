package models

import "time"

// Organization defines a tenant (a driving school) based on the
// 'organizations' table.
type Organization struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Roadwise Driving School"`
	Slug      string    `json:"slug" db:"slug" example:"roadwise"` // Unique, URL-safe identifier
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// LicenseKey defines a generated license key based on the 'license_keys'
// table. A key is single-use: activation binds it to an organization and
// enables its feature set there.
type LicenseKey struct {
	ID             int64      `json:"id" db:"id"`
	Key            string     `json:"key" db:"key" example:"RW-7Q2M-K9PX-4TNA-C3VJ"`
	FeatureSet     string     `json:"featureSet" db:"feature_set" example:"premium"` // Named bundle of license features
	ExpiresAt      time.Time  `json:"expiresAt" db:"expires_at"`
	OrganizationID *int64     `json:"organizationId,omitempty" db:"organization_id"` // Set on activation
	ActivatedAt    *time.Time `json:"activatedAt,omitempty" db:"activated_at"`
	ActivatedBy    *int64     `json:"activatedBy,omitempty" db:"activated_by"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

// IsActivated reports whether the key has already been bound to an
// organization.
func (k *LicenseKey) IsActivated() bool {
	return k.ActivatedAt != nil
}

// IsExpired reports whether the key (and the features it granted) has
// passed its expiry.
func (k *LicenseKey) IsExpired(now time.Time) bool {
	return now.After(k.ExpiresAt)
}

// LicenseFeature defines an organization-scoped premium capability based on
// the 'license_features' table. A feature exists for an organization once a
// license key granting it was activated; admins may toggle it afterwards.
type LicenseFeature struct {
	ID             int64     `json:"id" db:"id"`
	OrganizationID int64     `json:"organizationId" db:"organization_id"`
	FeatureKey     string    `json:"featureKey" db:"feature_key" example:"theory-exam-simulator"`
	Enabled        bool      `json:"enabled" db:"enabled"`
	ExpiresAt      time.Time `json:"expiresAt" db:"expires_at"` // Inherited from the granting license key
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// IsUsable reports whether the feature currently grants the capability:
// enabled by the admin and not past the license expiry.
func (f *LicenseFeature) IsUsable(now time.Time) bool {
	return f.Enabled && now.Before(f.ExpiresAt)
}
