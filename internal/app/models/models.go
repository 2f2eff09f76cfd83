package models

// RoleType defines the user role type
type RoleType string

const (
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleStudent    RoleType = "STUDENT"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// LessonStatus defines the lifecycle state of a lesson
type LessonStatus string

const (
	LessonScheduled LessonStatus = "SCHEDULED"
	LessonCompleted LessonStatus = "COMPLETED"
	LessonCancelled LessonStatus = "CANCELLED"
	LessonNoShow    LessonStatus = "NO_SHOW"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s LessonStatus) IsValid() bool {
	switch s {
	case LessonScheduled, LessonCompleted, LessonCancelled, LessonNoShow:
		return true
	}
	return false
}

// TransmissionType defines the vehicle transmission type
type TransmissionType string

const (
	TransmissionManual    TransmissionType = "MANUAL"
	TransmissionAutomatic TransmissionType = "AUTOMATIC"
)

// HistoryEntityType identifies which kind of configuration entity a
// configuration history entry refers to.
type HistoryEntityType string

const (
	HistoryEntityFlag           HistoryEntityType = "FLAG"
	HistoryEntitySetting        HistoryEntityType = "SETTING"
	HistoryEntityLicenseFeature HistoryEntityType = "LICENSE_FEATURE"
)
