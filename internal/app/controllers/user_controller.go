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

// UserController handles user management operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// parseIDParam parses a numeric path parameter, writing the standard
// validation error on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateUser handles user creation by the super admin
// @Summary Create a user
// @Description Creates a user with its role sub-profile (student or instructor)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=models.User} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.CreateUser(ctx, middleware.CurrentOrgID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// GetUser retrieves a user by ID
// @Summary Get user details
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.User} "User retrieved"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx, middleware.CurrentOrgID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// ListUsers retrieves a page of the organization's users
// @Summary List users
// @Description Lists users filtered by role and free-text search over name and email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter (SUPER_ADMIN, INSTRUCTOR, STUDENT)"
// @Param search query string false "Name or email search"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users retrieved"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	role := models.RoleType(ctx.Query("role"))
	if role != "" && !role.IsValid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role filter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	users, pagination, err := c.userService.ListUsers(ctx, middleware.CurrentOrgID(ctx), role, ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: users, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// UpdateUser updates a user's base data
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Param request body dto.UpdateUserRequest true "User data"
// @Success 200 {object} dto.APIResponse{data=models.User} "User updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateUser(ctx, middleware.CurrentOrgID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// SetUserActive enables or disables an account
// @Summary Enable or disable a user
// @Description Disabling an account also revokes its refresh tokens
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Param active query bool true "Target active state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "State changed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/active [patch]
func (c *UserController) SetUserActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	active, err := strconv.ParseBool(ctx.Query("active"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid active parameter").
			WithDetails("active must be true or false")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.SetUserActive(ctx, middleware.CurrentOrgID(ctx), id, active); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User state updated"}, Timestamp: time.Now()})
}

// DeleteUser removes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User referenced by lessons"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, middleware.CurrentOrgID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User deleted"}, Timestamp: time.Now()})
}

// GetStudentProgress reports a student's training progress
// @Summary Get student progress
// @Description Reports completed minutes and lessons against the required hours
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentProgressResponse} "Progress retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/progress [get]
func (c *UserController) GetStudentProgress(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.userService.GetStudentProgress(ctx, middleware.CurrentOrgID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: progress, Timestamp: time.Now()})
}
