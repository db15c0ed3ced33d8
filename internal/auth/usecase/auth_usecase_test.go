package usecase

import (
	"testing"
	"time"

	authdomain "internmail-backend/internal/auth/domain"
	"internmail-backend/internal/auth/repository"
	"internmail-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*authUsecase, *authdomain.User) {
	t.Helper()

	userRepo := repository.NewMemoryUserRepository()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	user := &authdomain.User{
		ID:    "u1",
		Email: "user@example.com",
		Name:  "Test User",
	}
	require.NoError(t, userRepo.Create(user))

	return NewAuthUsecase(userRepo, cfg).(*authUsecase), user
}

func TestGenerateAndValidateToken(t *testing.T) {
	uc, user := newAuthFixture(t)

	resp, err := uc.generateTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	validated, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)
	assert.Equal(t, user.Email, validated.Email)
}

func TestValidateToken_Garbage(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	uc, user := newAuthFixture(t)

	resp, err := uc.generateTokens(user)
	require.NoError(t, err)

	uc.config = &config.Config{
		JWTSecret:        "different-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	_, err = uc.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}

func TestRefreshToken_RotatesSession(t *testing.T) {
	uc, user := newAuthFixture(t)

	resp, err := uc.generateTokens(user)
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The presented token was rotated out and cannot be replayed
	_, err = uc.RefreshToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshToken_Invalid(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.RefreshToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshToken_NotStored(t *testing.T) {
	uc, user := newAuthFixture(t)

	resp, err := uc.generateTokens(user)
	require.NoError(t, err)

	// Logout revokes the stored token; the JWT itself is still well formed
	require.NoError(t, uc.Logout(resp.RefreshToken))

	_, err = uc.RefreshToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestLogoutAll_RevokesEveryDeviceSession(t *testing.T) {
	uc, user := newAuthFixture(t)

	// Two sign-ins, as from two devices
	first, err := uc.generateTokens(user)
	require.NoError(t, err)
	second, err := uc.generateTokens(user)
	require.NoError(t, err)

	require.NoError(t, uc.LogoutAll(user.ID))

	_, err = uc.RefreshToken(first.RefreshToken)
	assert.Error(t, err)
	_, err = uc.RefreshToken(second.RefreshToken)
	assert.Error(t, err)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	uc, _ := newAuthFixture(t)
	assert.NoError(t, uc.Logout("unknown-token"))
}
