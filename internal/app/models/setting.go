package models

import "time"

// SystemSetting defines a global key/value setting based on the
// 'system_settings' table. Values are stored as JSON text.
type SystemSetting struct {
	ID          int64     `json:"id" db:"id"`
	Key         string    `json:"key" db:"key" example:"booking.cancellation-window-hours"`
	Value       string    `json:"value" db:"value" example:"24"`
	Description string    `json:"description,omitempty" db:"description"`
	UpdatedBy   *int64    `json:"updatedBy,omitempty" db:"updated_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UserPreference defines a per-user key/value preference based on the
// 'user_preferences' table. Preferences are owner-scoped and not audited.
type UserPreference struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Key       string    `json:"key" db:"key" example:"dashboard.theme"`
	Value     string    `json:"value" db:"value" example:"dark"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ConfigurationHistory is an append-only audit record of a configuration
// mutation, based on the 'configuration_history' table.
type ConfigurationHistory struct {
	ID         int64             `json:"id" db:"id"`
	EntityType HistoryEntityType `json:"entityType" db:"entity_type" example:"FLAG"`
	EntityKey  string            `json:"entityKey" db:"entity_key" example:"theory-exam-simulator"`
	Action     string            `json:"action" db:"action" example:"UPDATE"` // CREATE, UPDATE or DELETE
	OldValue   *string           `json:"oldValue,omitempty" db:"old_value"`   // JSON snapshot before the change
	NewValue   *string           `json:"newValue,omitempty" db:"new_value"`   // JSON snapshot after the change
	ChangedBy  int64             `json:"changedBy" db:"changed_by"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
}
