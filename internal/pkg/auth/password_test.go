package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", hash)

	assert.True(t, CheckPassword(hash, "Secret123!"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("Secret123!")
	require.NoError(t, err)
	second, err := HashPassword("Secret123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
