package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roadwise/roadwise/internal/app/models"
)

func TestNormalizeRegistration(t *testing.T) {
	assert.Equal(t, "B-RW1234", normalizeRegistration("b-rw 1234"))
	assert.Equal(t, "B-RW1234", normalizeRegistration("  B-RW  1234  "))
	assert.Equal(t, "B-RW1234", normalizeRegistration("B-RW\t1234"))
	assert.Equal(t, "", normalizeRegistration("   "))
}

func TestIsValidTransmission(t *testing.T) {
	assert.True(t, isValidTransmission(models.TransmissionManual))
	assert.True(t, isValidTransmission(models.TransmissionAutomatic))
	assert.False(t, isValidTransmission(models.TransmissionType("CVT")))
	assert.False(t, isValidTransmission(models.TransmissionType("")))
}
