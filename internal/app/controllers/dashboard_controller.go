package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
)

// DashboardController serves the role-specific dashboard views
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Admin serves the super-admin dashboard
// @Summary Admin dashboard
// @Description Organization-wide user, lesson, vehicle and flag counts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboard} "Dashboard retrieved"
// @Router /dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	dashboard, err := c.dashboardService.AdminDashboard(ctx, middleware.CurrentOrgID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dashboard, Timestamp: time.Now()})
}

// Instructor serves the instructor dashboard
// @Summary Instructor dashboard
// @Description Today's and upcoming lessons plus the instructor's student count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InstructorDashboard} "Dashboard retrieved"
// @Router /dashboard/instructor [get]
func (c *DashboardController) Instructor(ctx *gin.Context) {
	dashboard, err := c.dashboardService.InstructorDashboard(ctx,
		middleware.CurrentOrgID(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dashboard, Timestamp: time.Now()})
}

// Student serves the student dashboard
// @Summary Student dashboard
// @Description Training progress and upcoming lessons of the calling student
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboard} "Dashboard retrieved"
// @Router /dashboard/student [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	dashboard, err := c.dashboardService.StudentDashboard(ctx,
		middleware.CurrentOrgID(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dashboard, Timestamp: time.Now()})
}
