package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewAuthService(AuthConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		DemoUsername:   "demo",
		DemoPassword:   "demo-password",
	}, logger)
	require.NoError(t, err)
	return svc
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t)

	token, expiresAt, err := svc.Login(context.Background(), "demo", "demo-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "demo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "admin", "demo-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	token, _, err := svc.Login(context.Background(), "demo", "demo-password")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "demo", claims.Username)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestAuthService(t)
	other := newTestAuthService(t)
	other.config.JWTSecret = "other-secret"

	token, _, err := other.Login(context.Background(), "demo", "demo-password")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}
