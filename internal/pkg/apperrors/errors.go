package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrResourceInUse         = errors.New("resource is referenced by other data")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInstructorNotFound = errors.New("instructor not found")
)

// Lesson errors
var (
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrInvalidLessonTransition = errors.New("invalid lesson status transition")
)

// Vehicle errors
var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleAlreadyExists = errors.New("vehicle with this registration already exists")
	ErrVehicleHasLessons    = errors.New("vehicle has scheduled lessons and cannot be deleted")
	ErrCategoryNotFound     = errors.New("licence category not found")
	ErrInvalidTransmission  = errors.New("invalid transmission type")
)

// Feature flag errors
var (
	ErrFlagNotFound      = errors.New("feature flag not found")
	ErrFlagAlreadyExists = errors.New("feature flag with this key already exists")
	ErrOverrideNotFound  = errors.New("flag override not found")
)

// Licensing errors
var (
	ErrOrganizationNotFound   = errors.New("organization not found")
	ErrLicenseKeyNotFound     = errors.New("license key not found")
	ErrLicenseKeyInvalid      = errors.New("license key is malformed or failed the checksum")
	ErrLicenseKeyUsed         = errors.New("license key has already been activated")
	ErrLicenseExpired         = errors.New("license has expired")
	ErrLicenseFeatureNotFound = errors.New("license feature not found")
	ErrFeatureNotLicensed     = errors.New("feature is not licensed for this organization")
)

// Settings errors
var (
	ErrSettingNotFound    = errors.New("system setting not found")
	ErrPreferenceNotFound = errors.New("user preference not found")
)

// CustomError wraps a sentinel error with a more specific message. The
// wrapped sentinel keeps driving the HTTP status mapping through errors.Is.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
