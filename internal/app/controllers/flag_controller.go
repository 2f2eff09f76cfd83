package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
)

// FlagController handles feature flag management and evaluation
type FlagController struct {
	flagService services.FlagService
}

// NewFlagController creates a new FlagController
func NewFlagController(flagService services.FlagService) *FlagController {
	return &FlagController{flagService: flagService}
}

// CreateFlag creates a feature flag
// @Summary Create a feature flag
// @Description Creates a flag; the creation is recorded in the configuration history
// @Tags flags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFlagRequest true "Flag definition"
// @Success 201 {object} dto.APIResponse{data=models.FeatureFlag} "Flag created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Flag key already exists"
// @Router /flags [post]
func (c *FlagController) CreateFlag(ctx *gin.Context) {
	var req dto.CreateFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid flag data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	flag, err := c.flagService.CreateFlag(ctx, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: flag, Timestamp: time.Now()})
}

// GetFlag retrieves a feature flag by key
// @Summary Get flag details
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Success 200 {object} dto.APIResponse{data=models.FeatureFlag} "Flag retrieved"
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Router /flags/{key} [get]
func (c *FlagController) GetFlag(ctx *gin.Context) {
	flag, err := c.flagService.GetFlag(ctx, ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: flag, Timestamp: time.Now()})
}

// ListFlags retrieves all feature flags
// @Summary List feature flags
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FeatureFlag} "Flags retrieved"
// @Router /flags [get]
func (c *FlagController) ListFlags(ctx *gin.Context) {
	flags, err := c.flagService.ListFlags(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: flags, Timestamp: time.Now()})
}

// UpdateFlag updates a flag definition
// @Summary Update a feature flag
// @Description Updates everything but the key; before/after snapshots land in the configuration history
// @Tags flags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Param request body dto.UpdateFlagRequest true "Flag definition"
// @Success 200 {object} dto.APIResponse{data=models.FeatureFlag} "Flag updated"
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Router /flags/{key} [put]
func (c *FlagController) UpdateFlag(ctx *gin.Context) {
	var req dto.UpdateFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid flag data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	flag, err := c.flagService.UpdateFlag(ctx, middleware.CurrentUserID(ctx), ctx.Param("key"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: flag, Timestamp: time.Now()})
}

// DeleteFlag removes a feature flag
// @Summary Delete a feature flag
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Flag deleted"
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Router /flags/{key} [delete]
func (c *FlagController) DeleteFlag(ctx *gin.Context) {
	if err := c.flagService.DeleteFlag(ctx, middleware.CurrentUserID(ctx), ctx.Param("key")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Flag deleted"}, Timestamp: time.Now()})
}

// SetOverride forces a flag value for a user
// @Summary Set a flag override
// @Description Forces the flag on or off for a single user, beating rollout and role targeting
// @Tags flags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Param request body dto.SetOverrideRequest true "Override"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Override set"
// @Failure 404 {object} dto.ErrorResponse "Flag or user not found"
// @Router /flags/{key}/overrides [put]
func (c *FlagController) SetOverride(ctx *gin.Context) {
	var req dto.SetOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid override data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.flagService.SetOverride(ctx, middleware.CurrentUserID(ctx), ctx.Param("key"), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Override set"}, Timestamp: time.Now()})
}

// ListOverrides lists the overrides of a flag
// @Summary List flag overrides
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Success 200 {object} dto.APIResponse{data=[]models.FlagOverride} "Overrides retrieved"
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Router /flags/{key}/overrides [get]
func (c *FlagController) ListOverrides(ctx *gin.Context) {
	overrides, err := c.flagService.ListOverrides(ctx, ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: overrides, Timestamp: time.Now()})
}

// DeleteOverride removes a flag override
// @Summary Delete a flag override
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param key path string true "Flag key"
// @Param userId path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Override removed"
// @Failure 404 {object} dto.ErrorResponse "Flag or override not found"
// @Router /flags/{key}/overrides/{userId} [delete]
func (c *FlagController) DeleteOverride(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.flagService.DeleteOverride(ctx, middleware.CurrentUserID(ctx), ctx.Param("key"), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Override removed"}, Timestamp: time.Now()})
}

// Evaluate resolves one flag for the calling user
// @Summary Evaluate a flag
// @Description Resolves a flag for the current user and reports which precedence layer decided
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param key query string true "Flag key"
// @Success 200 {object} dto.APIResponse{data=dto.EvaluationResponse} "Evaluation result"
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Router /flags/evaluate [get]
func (c *FlagController) Evaluate(ctx *gin.Context) {
	key := ctx.Query("key")
	if key == "" {
		badQueryParam(ctx, "key")
		return
	}

	result, err := c.flagService.Evaluate(ctx, key,
		middleware.CurrentUserID(ctx), middleware.CurrentOrgID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// Mine resolves every flag for the calling user
// @Summary Evaluate all flags for the current user
// @Description Returns a map of every flag key to its value for the caller, the set dashboards load on startup
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FlagSetResponse} "Flag set"
// @Router /flags/mine [get]
func (c *FlagController) Mine(ctx *gin.Context) {
	result, err := c.flagService.EvaluateAll(ctx,
		middleware.CurrentUserID(ctx), middleware.CurrentOrgID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}
