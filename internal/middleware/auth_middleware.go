package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextOrgID    = "organizationID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AuthMiddleware handles authentication and role checks
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller's identity on
// the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextOrgID, claims.OrganizationID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)

		c.Next()
	}
}

// RoleRequired rejects callers whose role is not in the allowed set. It
// must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, _ := role.(string)
		for _, allowed := range roles {
			if roleStr == string(allowed) {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// CurrentUserID returns the authenticated user's ID from the context
func CurrentUserID(c *gin.Context) int64 {
	if v, exists := c.Get(ContextUserID); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// CurrentOrgID returns the authenticated user's organization ID from the
// context
func CurrentOrgID(c *gin.Context) int64 {
	if v, exists := c.Get(ContextOrgID); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// CurrentRole returns the authenticated user's role from the context
func CurrentRole(c *gin.Context) string {
	if v, exists := c.Get(ContextRoleType); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
