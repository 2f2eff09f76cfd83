package models

import "time"

// FeatureFlag defines a feature flag based on the 'feature_flags' table.
// Flags are global definitions; organization scoping happens through the
// premium/license layer at evaluation time.
type FeatureFlag struct {
	ID                int64     `json:"id" db:"id"`
	Key               string    `json:"key" db:"key" example:"theory-exam-simulator"` // Unique flag key
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description,omitempty" db:"description"`
	Enabled           bool      `json:"enabled" db:"enabled"`
	RolloutPercentage int       `json:"rolloutPercentage" db:"rollout_percentage" example:"25"` // 0..100
	TargetRoles       []string  `json:"targetRoles" db:"target_roles"`                          // Empty slice targets every role
	Premium           bool      `json:"premium" db:"premium"`                                   // Requires the license feature of the same key
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// FlagOverride forces a flag value for a single user, bypassing role
// targeting and rollout bucketing. Based on the 'flag_overrides' table.
type FlagOverride struct {
	ID        int64     `json:"id" db:"id"`
	FlagID    int64     `json:"flagId" db:"flag_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Value     bool      `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
