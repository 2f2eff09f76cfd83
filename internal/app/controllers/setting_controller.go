package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
)

// SettingController handles system settings, user preferences and the
// configuration history
type SettingController struct {
	settingService services.SettingService
}

// NewSettingController creates a new SettingController
func NewSettingController(settingService services.SettingService) *SettingController {
	return &SettingController{settingService: settingService}
}

// ListSettings retrieves all system settings
// @Summary List system settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SystemSetting} "Settings retrieved"
// @Router /settings [get]
func (c *SettingController) ListSettings(ctx *gin.Context) {
	settings, err := c.settingService.ListSettings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: settings, Timestamp: time.Now()})
}

// GetSetting retrieves a system setting by key
// @Summary Get a system setting
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Success 200 {object} dto.APIResponse{data=models.SystemSetting} "Setting retrieved"
// @Failure 404 {object} dto.ErrorResponse "Setting not found"
// @Router /settings/{key} [get]
func (c *SettingController) GetSetting(ctx *gin.Context) {
	setting, err := c.settingService.GetSetting(ctx, ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: setting, Timestamp: time.Now()})
}

// UpsertSetting creates or replaces a system setting
// @Summary Write a system setting
// @Description Creates or replaces a setting value; the write is audited
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param request body dto.UpsertSettingRequest true "Setting value"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Setting written"
// @Router /settings/{key} [put]
func (c *SettingController) UpsertSetting(ctx *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid setting data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.settingService.UpsertSetting(ctx, middleware.CurrentUserID(ctx), ctx.Param("key"), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Setting written"}, Timestamp: time.Now()})
}

// DeleteSetting removes a system setting
// @Summary Delete a system setting
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Setting deleted"
// @Failure 404 {object} dto.ErrorResponse "Setting not found"
// @Router /settings/{key} [delete]
func (c *SettingController) DeleteSetting(ctx *gin.Context) {
	if err := c.settingService.DeleteSetting(ctx, middleware.CurrentUserID(ctx), ctx.Param("key")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Setting deleted"}, Timestamp: time.Now()})
}

// ListPreferences retrieves the caller's preferences
// @Summary List my preferences
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.UserPreference} "Preferences retrieved"
// @Router /preferences [get]
func (c *SettingController) ListPreferences(ctx *gin.Context) {
	prefs, err := c.settingService.ListPreferences(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: prefs, Timestamp: time.Now()})
}

// GetPreference retrieves a preference of the caller by key
// @Summary Get a preference
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Success 200 {object} dto.APIResponse{data=models.UserPreference} "Preference retrieved"
// @Failure 404 {object} dto.ErrorResponse "Preference not found"
// @Router /preferences/{key} [get]
func (c *SettingController) GetPreference(ctx *gin.Context) {
	pref, err := c.settingService.GetPreference(ctx, middleware.CurrentUserID(ctx), ctx.Param("key"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: pref, Timestamp: time.Now()})
}

// UpsertPreference creates or replaces a preference of the caller
// @Summary Write a preference
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Param request body dto.UpsertPreferenceRequest true "Preference value"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Preference written"
// @Router /preferences/{key} [put]
func (c *SettingController) UpsertPreference(ctx *gin.Context) {
	var req dto.UpsertPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid preference data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.settingService.UpsertPreference(ctx, middleware.CurrentUserID(ctx), ctx.Param("key"), req.Value); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Preference written"}, Timestamp: time.Now()})
}

// ListHistory retrieves the configuration history
// @Summary List configuration history
// @Description Lists audit entries for flag, setting and license feature changes, newest first
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param entityType query string false "Entity type filter (FLAG, SETTING, LICENSE_FEATURE)"
// @Param entityKey query string false "Entity key filter"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "History retrieved"
// @Router /settings/history [get]
func (c *SettingController) ListHistory(ctx *gin.Context) {
	filter := dto.HistoryFilter{
		EntityType: ctx.Query("entityType"),
		EntityKey:  ctx.Query("entityKey"),
	}
	page, size := helpers.ParsePaginationParams(ctx)

	entries, pagination, err := c.settingService.ListHistory(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: entries, Pagination: pagination},
		Timestamp: time.Now(),
	})
}
