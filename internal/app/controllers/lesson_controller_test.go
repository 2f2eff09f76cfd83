package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadwise/roadwise/internal/app/models"
)

func newQueryContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/lessons?"+rawQuery, nil)
	return ctx, w
}

func TestParseLessonFilterAcceptsKnownStatus(t *testing.T) {
	ctx, _ := newQueryContext(t, "status=COMPLETED&studentId=3")

	filter, ok := parseLessonFilter(ctx)
	require.True(t, ok)
	assert.Equal(t, models.LessonCompleted, filter.Status)
	assert.Equal(t, int64(3), filter.StudentID)
}

func TestParseLessonFilterEmptyQuery(t *testing.T) {
	ctx, _ := newQueryContext(t, "")

	filter, ok := parseLessonFilter(ctx)
	require.True(t, ok)
	assert.Empty(t, filter.Status)
	assert.Zero(t, filter.StudentID)
	assert.Nil(t, filter.From)
}

func TestParseLessonFilterRejectsUnknownStatus(t *testing.T) {
	ctx, w := newQueryContext(t, "status=ARCHIVED")

	_, ok := parseLessonFilter(ctx)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")
}

func TestParseLessonFilterRejectsBadStudentID(t *testing.T) {
	ctx, w := newQueryContext(t, "studentId=abc")

	_, ok := parseLessonFilter(ctx)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseLessonFilterParsesTimeRange(t *testing.T) {
	ctx, _ := newQueryContext(t, "from=2026-09-01T08:00:00Z&to=2026-09-07T18:00:00Z")

	filter, ok := parseLessonFilter(ctx)
	require.True(t, ok)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), filter.From.UTC())
}

func TestParseLessonFilterRejectsBadTime(t *testing.T) {
	ctx, w := newQueryContext(t, "from=next-tuesday")

	_, ok := parseLessonFilter(ctx)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
