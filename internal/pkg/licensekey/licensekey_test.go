package licensekey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesValidKeys(t *testing.T) {
	for i := 0; i < 50; i++ {
		key, err := Generate()
		require.NoError(t, err)

		groups := strings.Split(key, "-")
		require.Len(t, groups, 5)
		assert.Equal(t, "RW", groups[0])
		for _, g := range groups[1:] {
			assert.Len(t, g, 4)
		}

		normalized, err := Validate(key)
		require.NoError(t, err)
		assert.Equal(t, key, normalized)
	}
}

func TestGenerateKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := Generate()
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestValidateNormalizes(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	normalized, err := Validate("  " + strings.ToLower(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, normalized)
}

func TestValidateRejectsTamperedChecksum(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)

	// Flip one character of a data group to another alphabet character
	bytes := []byte(key)
	pos := 4 // First character of the first data group
	if bytes[pos] == 'A' {
		bytes[pos] = 'B'
	} else {
		bytes[pos] = 'A'
	}

	_, err = Validate(string(bytes))
	assert.ErrorIs(t, err, ErrBadChecksum)
}

func TestValidateRejectsMalformedKeys(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"garbage", "not-a-key"},
		{"wrong prefix", "XX-7Q2M-K9PX-4TNA-C3VJ"},
		{"missing group", "RW-7Q2M-K9PX-4TNA"},
		{"extra group", "RW-7Q2M-K9PX-4TNA-C3VJ-AAAA"},
		{"short group", "RW-7Q2-K9PX-4TNA-C3VJ"},
		{"excluded character", "RW-7Q2I-K9PX-4TNA-C3VJ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.key)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
