package repository

import authdomain "internmail-backend/internal/auth/domain"

// UserRepository persists accounts and their session refresh tokens.
// Lookup methods return (nil, nil) when the row does not exist.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	// FindAllWithTokens returns every user holding a mailbox access token,
	// for the background sync loop
	FindAllWithTokens() ([]*authdomain.User, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}
