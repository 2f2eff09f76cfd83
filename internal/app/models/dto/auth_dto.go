package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserProfile represents the role-shaped profile of the authenticated user
type UserProfile struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Phone            *string `json:"phone,omitempty"`
	RoleType         string  `json:"roleType"`
	OrganizationID   int64   `json:"organizationId"`
	OrganizationName string  `json:"organizationName,omitempty"`

	// Student specific fields
	CategoryCode     *string `json:"categoryCode,omitempty"`
	RequiredMinutes  *int    `json:"requiredMinutes,omitempty"`
	CompletedMinutes *int    `json:"completedMinutes,omitempty"`

	// Instructor specific fields
	Categories []string `json:"categories,omitempty"`
}
