package rollout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestBucketIsDeterministic(t *testing.T) {
	for _, userID := range []int64{1, 42, 999999} {
		first := Bucket("theory-exam-simulator", userID)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Bucket("theory-exam-simulator", userID))
		}
	}
}

func TestBucketRange(t *testing.T) {
	for userID := int64(1); userID <= 1000; userID++ {
		b := Bucket("some-flag", userID)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 100)
	}
}

func TestBucketVariesAcrossFlags(t *testing.T) {
	// The flag key participates in the hash, so the same user should land
	// in different buckets for at least some flag pairs.
	userID := int64(7)
	same := 0
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i := 1; i < len(keys); i++ {
		if Bucket(keys[0], userID) == Bucket(keys[i], userID) {
			same++
		}
	}
	assert.Less(t, same, len(keys)-1)
}

func TestEvaluateDisabledBeatsEverything(t *testing.T) {
	result := Evaluate(Input{
		FlagKey:           "f",
		Enabled:           false,
		RolloutPercentage: 100,
		Override:          boolPtr(true),
		UserID:            1,
	})

	assert.False(t, result.Value)
	assert.Equal(t, ReasonDisabled, result.Reason)
}

func TestEvaluateOverrideWins(t *testing.T) {
	// Override forces the flag on even at 0% rollout
	on := Evaluate(Input{
		FlagKey:           "f",
		Enabled:           true,
		RolloutPercentage: 0,
		Override:          boolPtr(true),
		UserID:            1,
	})
	assert.True(t, on.Value)
	assert.Equal(t, ReasonOverride, on.Reason)

	// And off even at 100% rollout
	off := Evaluate(Input{
		FlagKey:           "f",
		Enabled:           true,
		RolloutPercentage: 100,
		Override:          boolPtr(false),
		UserID:            1,
	})
	assert.False(t, off.Value)
	assert.Equal(t, ReasonOverride, off.Reason)
}

func TestEvaluateOverrideBeatsRoleTargeting(t *testing.T) {
	result := Evaluate(Input{
		FlagKey:           "f",
		Enabled:           true,
		RolloutPercentage: 100,
		TargetRoles:       []string{"INSTRUCTOR"},
		Override:          boolPtr(true),
		UserID:            1,
		UserRole:          "STUDENT",
	})

	assert.True(t, result.Value)
	assert.Equal(t, ReasonOverride, result.Reason)
}

func TestEvaluatePremiumRequiresLicense(t *testing.T) {
	in := Input{
		FlagKey:           "premium-flag",
		Enabled:           true,
		RolloutPercentage: 100,
		Premium:           true,
		Licensed:          false,
		UserID:            1,
	}

	unlicensed := Evaluate(in)
	assert.False(t, unlicensed.Value)
	assert.Equal(t, ReasonUnlicensed, unlicensed.Reason)

	in.Licensed = true
	licensed := Evaluate(in)
	assert.True(t, licensed.Value)
	assert.Equal(t, ReasonRollout, licensed.Reason)
}

func TestEvaluateLicenseIgnoredForNonPremium(t *testing.T) {
	result := Evaluate(Input{
		FlagKey:           "f",
		Enabled:           true,
		RolloutPercentage: 100,
		Premium:           false,
		Licensed:          false,
		UserID:            1,
	})

	assert.True(t, result.Value)
	assert.Equal(t, ReasonRollout, result.Reason)
}

func TestEvaluateRoleTargeting(t *testing.T) {
	in := Input{
		FlagKey:           "f",
		Enabled:           true,
		RolloutPercentage: 100,
		TargetRoles:       []string{"INSTRUCTOR", "SUPER_ADMIN"},
		UserID:            1,
	}

	in.UserRole = "STUDENT"
	excluded := Evaluate(in)
	assert.False(t, excluded.Value)
	assert.Equal(t, ReasonRole, excluded.Reason)

	in.UserRole = "INSTRUCTOR"
	included := Evaluate(in)
	assert.True(t, included.Value)
	assert.Equal(t, ReasonRollout, included.Reason)
}

func TestEvaluateEmptyTargetRolesMatchEveryone(t *testing.T) {
	result := Evaluate(Input{
		FlagKey:           "f",
		Enabled:           true,
		RolloutPercentage: 100,
		TargetRoles:       []string{},
		UserID:            1,
		UserRole:          "STUDENT",
	})

	assert.True(t, result.Value)
	assert.Equal(t, ReasonRollout, result.Reason)
}

func TestEvaluateRolloutBoundaries(t *testing.T) {
	userID := int64(123)
	bucket := Bucket("f", userID)

	// 0% is off for everyone, 100% on for everyone
	zero := Evaluate(Input{FlagKey: "f", Enabled: true, RolloutPercentage: 0, UserID: userID})
	assert.False(t, zero.Value)

	full := Evaluate(Input{FlagKey: "f", Enabled: true, RolloutPercentage: 100, UserID: userID})
	assert.True(t, full.Value)

	// The user is in exactly when the percentage exceeds their bucket
	atBucket := Evaluate(Input{FlagKey: "f", Enabled: true, RolloutPercentage: bucket, UserID: userID})
	assert.False(t, atBucket.Value)

	aboveBucket := Evaluate(Input{FlagKey: "f", Enabled: true, RolloutPercentage: bucket + 1, UserID: userID})
	assert.True(t, aboveBucket.Value)
}

func TestEvaluateRolloutIsMonotonic(t *testing.T) {
	// Raising the percentage must never drop a user out of the rollout.
	for userID := int64(1); userID <= 200; userID++ {
		wasIn := false
		for pct := 0; pct <= 100; pct++ {
			result := Evaluate(Input{
				FlagKey:           "monotonic",
				Enabled:           true,
				RolloutPercentage: pct,
				UserID:            userID,
			})
			if wasIn {
				assert.True(t, result.Value,
					"user %d dropped out when rollout grew to %d%%", userID, pct)
			}
			wasIn = wasIn || result.Value
		}
		assert.True(t, wasIn)
	}
}
