package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureSetsAreNested(t *testing.T) {
	// Each tier must contain everything the tier below grants, so upgrading
	// a school never takes a feature away.
	starter := featureSets["starter"]
	premium := featureSets["premium"]
	enterprise := featureSets["enterprise"]

	require.NotEmpty(t, starter)
	require.NotEmpty(t, premium)
	require.NotEmpty(t, enterprise)

	assert.Subset(t, premium, starter)
	assert.Subset(t, enterprise, premium)
	assert.Greater(t, len(premium), len(starter))
	assert.Greater(t, len(enterprise), len(premium))
}

func TestFeatureSetsHaveNoDuplicates(t *testing.T) {
	for name, features := range featureSets {
		seen := make(map[string]bool)
		for _, f := range features {
			assert.False(t, seen[f], "feature set %q lists %q twice", name, f)
			seen[f] = true
		}
	}
}
