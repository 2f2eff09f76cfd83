package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login handles user login
// @Summary Log in
// @Description Verifies credentials and returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Tokens issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens, Timestamp: time.Now()})
}

// Refresh rotates a refresh token
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Tokens issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Token expired, revoked or unknown"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid refresh data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens, Timestamp: time.Now()})
}

// Logout revokes the presented refresh token
// @Summary Log out
// @Description Revokes the refresh token so it can no longer be exchanged
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid logout data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out"}, Timestamp: time.Now()})
}

// Me returns the authenticated user's profile
// @Summary Get current user profile
// @Description Returns the role-shaped profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	profile, err := c.authService.GetProfile(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile, Timestamp: time.Now()})
}
