package dto

// UpsertSettingRequest creates or replaces a system setting value
type UpsertSettingRequest struct {
	Value       string `json:"value" binding:"required"`
	Description string `json:"description,omitempty"`
}

// UpsertPreferenceRequest creates or replaces a user preference value
type UpsertPreferenceRequest struct {
	Value string `json:"value" binding:"required"`
}

// HistoryFilter holds the optional configuration-history list filters
type HistoryFilter struct {
	EntityType string
	EntityKey  string
}
