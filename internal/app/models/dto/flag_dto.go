package dto

// CreateFlagRequest represents a request to create a feature flag
type CreateFlagRequest struct {
	Key               string   `json:"key" binding:"required"`
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description,omitempty"`
	Enabled           bool     `json:"enabled"`
	RolloutPercentage int      `json:"rolloutPercentage" binding:"min=0,max=100"`
	TargetRoles       []string `json:"targetRoles,omitempty"`
	Premium           bool     `json:"premium"`
}

// UpdateFlagRequest represents an update of a feature flag definition.
// The key is immutable; evaluation results and audit entries are keyed by it.
type UpdateFlagRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description,omitempty"`
	Enabled           bool     `json:"enabled"`
	RolloutPercentage int      `json:"rolloutPercentage" binding:"min=0,max=100"`
	TargetRoles       []string `json:"targetRoles,omitempty"`
	Premium           bool     `json:"premium"`
}

// SetOverrideRequest forces a flag value for a single user
type SetOverrideRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
	Value  *bool `json:"value" binding:"required"`
}

// EvaluationResponse is the result of evaluating one flag for one user
type EvaluationResponse struct {
	Key    string `json:"key"`
	Value  bool   `json:"value"`
	Reason string `json:"reason" example:"rollout"` // Which precedence layer decided
	Bucket int    `json:"bucket" example:"37"`      // Deterministic 0..99 rollout bucket
}

// FlagSetResponse maps every flag key to its value for the current user
type FlagSetResponse struct {
	Flags map[string]bool `json:"flags"`
}
