package dto

// LoginRequest represents the credentials for a password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token being exchanged.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleIDTokenRequest carries a Google ID token for token-based sign-in.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
