package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "roadwise.test",
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:             42,
		OrganizationID: 7,
		Email:          "driver@roadwise.app",
		RoleType:       role,
	})
	require.NoError(t, err)
	return accessToken
}

func newTestRouter(m *AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":         CurrentUserID(c),
			"organizationId": CurrentOrgID(c),
			"role":           CurrentRole(c),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	router := newTestRouter(NewAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	router := newTestRouter(NewAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsInvalidToken(t *testing.T) {
	router := newTestRouter(NewAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSetsCallerIdentity(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(NewAuthMiddleware(jwtService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleStudent))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":42,"organizationId":7,"role":"STUDENT"}`, w.Body.String())
}

func TestRoleRequiredAllowsMatchingRole(t *testing.T) {
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService)
	router := newTestRouter(m, m.RoleRequired(models.RoleSuperAdmin, models.RoleInstructor))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleInstructor))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredBlocksOtherRoles(t *testing.T) {
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService)
	router := newTestRouter(m, m.RoleRequired(models.RoleSuperAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleStudent))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
