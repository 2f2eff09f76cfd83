package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
)

// LessonController handles lesson scheduling operations
type LessonController struct {
	lessonService services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// CreateLesson schedules a lesson
// @Summary Schedule a lesson
// @Description Creates a SCHEDULED lesson for a student, instructor and vehicle
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=models.Lesson} "Lesson scheduled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student, instructor or vehicle not found"
// @Router /lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lesson data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lesson, err := c.lessonService.ScheduleLesson(ctx, middleware.CurrentOrgID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: lesson, Timestamp: time.Now()})
}

// GetLesson retrieves a lesson by ID
// @Summary Get lesson details
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson retrieved"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx, middleware.CurrentOrgID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: lesson, Timestamp: time.Now()})
}

// ListLessons retrieves a page of lessons
// @Summary List lessons
// @Description Lists lessons filtered by student, instructor, status and time range
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Student filter"
// @Param instructorId query int false "Instructor filter"
// @Param status query string false "Status filter (SCHEDULED, COMPLETED, CANCELLED, NO_SHOW)"
// @Param from query string false "Start of time range (RFC 3339)"
// @Param to query string false "End of time range (RFC 3339)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Lessons retrieved"
// @Router /lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	filter, ok := parseLessonFilter(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	lessons, pagination, err := c.lessonService.ListLessons(ctx,
		middleware.CurrentOrgID(ctx), middleware.CurrentUserID(ctx),
		models.RoleType(middleware.CurrentRole(ctx)), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: lessons, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// parseLessonFilter reads the optional lesson list filters from the query
// string, writing the standard validation error on bad input.
func parseLessonFilter(ctx *gin.Context) (dto.LessonFilter, bool) {
	var filter dto.LessonFilter

	if v := ctx.Query("studentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badQueryParam(ctx, "studentId")
			return filter, false
		}
		filter.StudentID = id
	}
	if v := ctx.Query("instructorId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badQueryParam(ctx, "instructorId")
			return filter, false
		}
		filter.InstructorID = id
	}
	if v := ctx.Query("status"); v != "" {
		status := models.LessonStatus(v)
		if !status.IsValid() {
			badQueryParam(ctx, "status")
			return filter, false
		}
		filter.Status = status
	}
	if v := ctx.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badQueryParam(ctx, "from")
			return filter, false
		}
		filter.From = &t
	}
	if v := ctx.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badQueryParam(ctx, "to")
			return filter, false
		}
		filter.To = &t
	}

	return filter, true
}

func badQueryParam(ctx *gin.Context, name string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameter").WithField(name)
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// UpdateLesson reschedules a lesson
// @Summary Reschedule a lesson
// @Description Moves a SCHEDULED lesson to a new slot or vehicle
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Param request body dto.UpdateLessonRequest true "Lesson data"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Lesson rescheduled"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 409 {object} dto.ErrorResponse "Lesson is not in a reschedulable state"
// @Router /lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lesson data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lesson, err := c.lessonService.RescheduleLesson(ctx, middleware.CurrentOrgID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: lesson, Timestamp: time.Now()})
}

// UpdateLessonStatus transitions a lesson status
// @Summary Update lesson status
// @Description Completes, cancels or marks a lesson as no-show. Completing credits the student's counter.
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Param request body dto.UpdateLessonStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Lesson} "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /lessons/{id}/status [patch]
func (c *LessonController) UpdateLessonStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLessonStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lesson, err := c.lessonService.UpdateLessonStatus(ctx, middleware.CurrentOrgID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: lesson, Timestamp: time.Now()})
}
