// Package rollout implements deterministic percentage-rollout evaluation for
// feature flags. A user+flag pair hashes into a stable 0..99 bucket; the flag
// is on for the user when the bucket falls below the rollout percentage.
// Because the bucket never changes, raising the percentage only ever adds
// users to the rollout, it never drops anyone out.
package rollout

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Reason identifies which precedence layer decided an evaluation.
type Reason string

const (
	ReasonDisabled   Reason = "disabled"
	ReasonOverride   Reason = "override"
	ReasonUnlicensed Reason = "unlicensed"
	ReasonRole       Reason = "role"
	ReasonRollout    Reason = "rollout"
)

// Input carries everything the evaluator needs about one flag and one user.
// Callers resolve overrides and license state up front so evaluation itself
// stays pure.
type Input struct {
	FlagKey           string
	Enabled           bool
	RolloutPercentage int      // 0..100
	TargetRoles       []string // Empty targets every role
	Premium           bool
	Licensed          bool // Org has a usable license feature for FlagKey; ignored unless Premium

	UserID   int64
	UserRole string
	Override *bool // Per-user forced value, nil when absent
}

// Result is the outcome of evaluating one flag for one user.
type Result struct {
	Value  bool
	Reason Reason
	Bucket int // Deterministic 0..99 bucket, always populated
}

// Bucket returns the stable rollout bucket for a user and flag. The flag key
// participates in the hash so a user's buckets are independent across flags.
// The numeric user id is used rather than the email: renaming a user must
// not move them across the rollout boundary.
func Bucket(flagKey string, userID int64) int {
	h := xxhash.New()
	_, _ = h.WriteString(flagKey)
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(strconv.FormatInt(userID, 10))
	return int(h.Sum64() % 100)
}

// Evaluate applies the layered precedence rules:
//
//  1. disabled flag is off for everyone
//  2. an explicit per-user override wins
//  3. a premium flag without a usable license feature is off
//  4. role targeting excludes users outside the target roles
//  5. the rollout bucket decides
func Evaluate(in Input) Result {
	bucket := Bucket(in.FlagKey, in.UserID)

	if !in.Enabled {
		return Result{Value: false, Reason: ReasonDisabled, Bucket: bucket}
	}

	if in.Override != nil {
		return Result{Value: *in.Override, Reason: ReasonOverride, Bucket: bucket}
	}

	if in.Premium && !in.Licensed {
		return Result{Value: false, Reason: ReasonUnlicensed, Bucket: bucket}
	}

	if len(in.TargetRoles) > 0 && !containsRole(in.TargetRoles, in.UserRole) {
		return Result{Value: false, Reason: ReasonRole, Bucket: bucket}
	}

	return Result{Value: bucket < in.RolloutPercentage, Reason: ReasonRollout, Bucket: bucket}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
