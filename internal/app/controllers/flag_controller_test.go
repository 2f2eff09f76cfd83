package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
)

// flagServiceStub embeds the interface so each test only fills in the
// method under test.
type flagServiceStub struct {
	services.FlagService
	listOverrides func(ctx context.Context, key string) ([]*models.FlagOverride, error)
}

func (s *flagServiceStub) ListOverrides(ctx context.Context, key string) ([]*models.FlagOverride, error) {
	return s.listOverrides(ctx, key)
}

func newFlagRouter(stub *flagServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewFlagController(stub)
	router.GET("/flags/:key/overrides", controller.ListOverrides)
	return router
}

func TestListOverridesReturnsOverrides(t *testing.T) {
	stub := &flagServiceStub{
		listOverrides: func(ctx context.Context, key string) ([]*models.FlagOverride, error) {
			require.Equal(t, "theory-exam-simulator", key)
			return []*models.FlagOverride{
				{ID: 1, FlagID: 5, UserID: 42, Value: true, UpdatedAt: time.Now()},
				{ID: 2, FlagID: 5, UserID: 77, Value: false, UpdatedAt: time.Now()},
			}, nil
		},
	}
	router := newFlagRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flags/theory-exam-simulator/overrides", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"userId":77`)
}

func TestListOverridesUnknownFlag(t *testing.T) {
	stub := &flagServiceStub{
		listOverrides: func(ctx context.Context, key string) ([]*models.FlagOverride, error) {
			return nil, apperrors.ErrFlagNotFound
		},
	}
	router := newFlagRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flags/ghost/overrides", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
