package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLicenseKeyIsActivated(t *testing.T) {
	key := &LicenseKey{}
	assert.False(t, key.IsActivated())

	now := time.Now()
	key.ActivatedAt = &now
	assert.True(t, key.IsActivated())
}

func TestLicenseKeyIsExpired(t *testing.T) {
	now := time.Now()

	fresh := &LicenseKey{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, fresh.IsExpired(now))

	stale := &LicenseKey{ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, stale.IsExpired(now))
}

func TestLicenseFeatureIsUsable(t *testing.T) {
	now := time.Now()

	usable := &LicenseFeature{Enabled: true, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, usable.IsUsable(now))

	disabled := &LicenseFeature{Enabled: false, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, disabled.IsUsable(now))

	expired := &LicenseFeature{Enabled: true, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.IsUsable(now))
}
