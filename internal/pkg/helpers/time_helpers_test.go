package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("garbage", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 8, 25, 15, 42, 7, 123, time.UTC)
	out := StartOfDay(in)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), out)
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	// Tuesday maps back to Monday
	assert.Equal(t, monday, StartOfWeek(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)))
	// Monday maps to itself
	assert.Equal(t, monday, StartOfWeek(monday.Add(5*time.Hour)))
	// Sunday belongs to the week that started the previous Monday
	assert.Equal(t, monday, StartOfWeek(time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)))
}
