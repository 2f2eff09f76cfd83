package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
)

// LicenseController handles license key and entitlement operations
type LicenseController struct {
	licenseService services.LicenseService
}

// NewLicenseController creates a new LicenseController
func NewLicenseController(licenseService services.LicenseService) *LicenseController {
	return &LicenseController{licenseService: licenseService}
}

// GenerateKey creates a new license key
// @Summary Generate a license key
// @Description Creates a single-use key carrying a feature set and an expiry
// @Tags licensing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateKeyRequest true "Key parameters"
// @Success 201 {object} dto.APIResponse{data=models.LicenseKey} "Key generated"
// @Failure 400 {object} dto.ErrorResponse "Unknown feature set or past expiry"
// @Router /licenses/keys [post]
func (c *LicenseController) GenerateKey(ctx *gin.Context) {
	var req dto.GenerateKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid key data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	key, err := c.licenseService.GenerateKey(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: key, Timestamp: time.Now()})
}

// ListKeys retrieves all license keys
// @Summary List license keys
// @Tags licensing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LicenseKey} "Keys retrieved"
// @Router /licenses/keys [get]
func (c *LicenseController) ListKeys(ctx *gin.Context) {
	keys, err := c.licenseService.ListKeys(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: keys, Timestamp: time.Now()})
}

// ActivateKey binds a key to the caller's organization
// @Summary Activate a license key
// @Description Validates the key checksum, binds the key to the organization and grants its feature set
// @Tags licensing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ActivateKeyRequest true "License key"
// @Success 200 {object} dto.APIResponse{data=dto.ActivationResponse} "Key activated"
// @Failure 400 {object} dto.ErrorResponse "Malformed key or checksum mismatch"
// @Failure 404 {object} dto.ErrorResponse "Key not found"
// @Failure 409 {object} dto.ErrorResponse "Key already activated"
// @Failure 410 {object} dto.ErrorResponse "Key expired"
// @Router /licenses/activate [post]
func (c *LicenseController) ActivateKey(ctx *gin.Context) {
	var req dto.ActivateKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid activation data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.licenseService.ActivateKey(ctx, middleware.CurrentOrgID(ctx), middleware.CurrentUserID(ctx), req.Key)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// ListFeatures retrieves the organization's licensed features
// @Summary List licensed features
// @Tags licensing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LicenseFeature} "Features retrieved"
// @Router /licenses/features [get]
func (c *LicenseController) ListFeatures(ctx *gin.Context) {
	features, err := c.licenseService.ListFeatures(ctx, middleware.CurrentOrgID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: features, Timestamp: time.Now()})
}

// ToggleFeature enables or disables a licensed feature
// @Summary Toggle a licensed feature
// @Description Turns a granted feature off or back on; the change is audited
// @Tags licensing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Feature key"
// @Param request body dto.ToggleFeatureRequest true "Target state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Feature toggled"
// @Failure 404 {object} dto.ErrorResponse "Feature not found"
// @Router /licenses/features/{key} [patch]
func (c *LicenseController) ToggleFeature(ctx *gin.Context) {
	var req dto.ToggleFeatureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid toggle data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.licenseService.ToggleFeature(ctx,
		middleware.CurrentOrgID(ctx), middleware.CurrentUserID(ctx), ctx.Param("key"), *req.Enabled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Feature toggled"}, Timestamp: time.Now()})
}
