package dto

import "time"

// GenerateKeyRequest represents a request to generate a license key
type GenerateKeyRequest struct {
	FeatureSet string    `json:"featureSet" binding:"required"`
	ExpiresAt  time.Time `json:"expiresAt" binding:"required"`
}

// ActivateKeyRequest represents a request to activate a license key for the
// caller's organization
type ActivateKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// ToggleFeatureRequest enables or disables a licensed feature
type ToggleFeatureRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ActivationResponse reports the outcome of a key activation
type ActivationResponse struct {
	FeatureSet string    `json:"featureSet"`
	Features   []string  `json:"features"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
