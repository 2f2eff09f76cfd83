package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/roadwise/roadwise/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// Claims defines JWT token content
type Claims struct {
	UserID         int64  `json:"userId"`
	OrganizationID int64  `json:"organizationId"`
	Email          string `json:"email"`
	RoleType       string `json:"roleType"`
	jwt.RegisteredClaims
}

// GenerateTokenPair creates access and refresh token pair. The refresh token
// is an opaque UUID persisted server side.
func (s *JWTService) GenerateTokenPair(user *models.User) (accessToken, refreshToken string, expiresIn, refreshExpiresIn int64, err error) {
	now := time.Now()
	claims := &Claims{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Email:          user.Email,
		RoleType:       string(user.RoleType),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err = token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken = uuid.New().String()
	expiresIn = int64(s.config.AccessTokenExp.Seconds())
	refreshExpiresIn = int64(s.config.RefreshTokenExp.Seconds())

	return accessToken, refreshToken, expiresIn, refreshExpiresIn, nil
}

// ValidateToken parses and validates an access token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID <= 0 || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetRefreshTokenExpiry returns refresh token expiry time
func (s *JWTService) GetRefreshTokenExpiry() time.Time {
	return time.Now().Add(s.config.RefreshTokenExp)
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}
	return "", ErrInvalidFormat
}
