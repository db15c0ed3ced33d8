package usecase

import (
	"context"

	authdomain "internmail-backend/internal/auth/domain"
	authdto "internmail-backend/internal/auth/dto"
)

// AuthUsecase handles Google sign-in and the JWT session lifecycle
type AuthUsecase interface {
	// GoogleSignIn exchanges an OAuth authorization code for Google tokens,
	// upserts the account and issues session tokens
	GoogleSignIn(ctx context.Context, code string) (*authdto.TokenResponse, error)
	// RefreshToken rotates the session for a valid stored refresh token
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	// Logout revokes one stored refresh token
	Logout(refreshToken string) error
	// LogoutAll revokes every stored refresh token for the user, ending all
	// device sessions at once
	LogoutAll(userID string) error
	// ValidateToken verifies an access token and loads its user
	ValidateToken(tokenString string) (*authdomain.User, error)
}
