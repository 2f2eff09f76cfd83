package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// HandleAPIError maps application errors to the standard error response.
// Controllers call it with any service error and return.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")))

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))

	// Licensing
	case errors.Is(err, apperrors.ErrLicenseKeyInvalid):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeLicenseKeyInvalid, "License key is invalid")))
	case errors.Is(err, apperrors.ErrLicenseKeyUsed):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeLicenseKeyUsed, "License key has already been activated")))
	case errors.Is(err, apperrors.ErrLicenseExpired):
		c.JSON(410, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeLicenseExpired, "License has expired")))
	case errors.Is(err, apperrors.ErrFeatureNotLicensed):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeFeatureDisabled, "Feature is not licensed")))

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrVehicleAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Vehicle with this registration already exists")))
	case errors.Is(err, apperrors.ErrFlagAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Feature flag with this key already exists")))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")))
	case errors.Is(err, apperrors.ErrVehicleHasLessons):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInUse, "Vehicle has scheduled lessons")))
	case errors.Is(err, apperrors.ErrResourceInUse):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInUse, "Resource is referenced by other data")))
	case errors.Is(err, apperrors.ErrInvalidLessonTransition):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lesson status transition")))

	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrInstructorNotFound),
		errors.Is(err, apperrors.ErrLessonNotFound),
		errors.Is(err, apperrors.ErrVehicleNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrFlagNotFound),
		errors.Is(err, apperrors.ErrOverrideNotFound),
		errors.Is(err, apperrors.ErrOrganizationNotFound),
		errors.Is(err, apperrors.ErrLicenseKeyNotFound),
		errors.Is(err, apperrors.ErrLicenseFeatureNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound),
		errors.Is(err, apperrors.ErrPreferenceNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))

	// Validation
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidTransmission),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
