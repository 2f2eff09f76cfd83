package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadwise/roadwise/internal/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:             42,
		OrganizationID: 7,
		Email:          "driver@roadwise.app",
		RoleType:       models.RoleInstructor,
	}
}

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "roadwise.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := newTestService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, int64(3600), expiresIn)
	assert.Equal(t, int64(720*3600), refreshExpiresIn)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.OrganizationID)
	assert.Equal(t, "driver@roadwise.app", claims.Email)
	assert.Equal(t, string(models.RoleInstructor), claims.RoleType)
	assert.Equal(t, "roadwise.test", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	accessToken, _, _, _, err := newTestService(time.Hour).GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
	})

	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := newTestService(-time.Minute)

	accessToken, _, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := newTestService(time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	service := newTestService(time.Hour)

	_, first, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)
	_, second, _, _, err := service.GenerateTokenPair(testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic abc123")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
