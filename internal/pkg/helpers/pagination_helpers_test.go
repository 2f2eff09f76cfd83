package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		offset     uint64
		limit      int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"zero page defaults to first", 0, 10, 0, 10},
		{"negative page defaults to first", -5, 10, 0, 10},
		{"zero size uses default", 2, 0, 20, DefaultPageSize},
		{"oversized page size is capped", 1, 500, 0, DefaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)
}

func TestNewPaginationInfoEmptyResult(t *testing.T) {
	info := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, int64(0), info.TotalItems)
}

func TestNewPaginationInfoClampsPastLastPage(t *testing.T) {
	info := NewPaginationInfo(10, 9, 20)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
}
