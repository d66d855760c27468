package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPasswordHash reports whether password matches the bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AuthConfig carries the demo credential and token settings.
type AuthConfig struct {
	JWTSecret      string
	JWTExpiryHours int
	DemoUsername   string
	DemoPassword   string
}

// AuthService validates the single configured demo account and issues HS256
// access tokens. The demo deployment has no user table; the configured
// credentials are the whole account base.
type AuthService struct {
	config       AuthConfig
	passwordHash string
	logger       *slog.Logger
}

// NewAuthService hashes the configured demo password once at startup.
func NewAuthService(config AuthConfig, logger *slog.Logger) (*AuthService, error) {
	hash, err := HashPassword(config.DemoPassword)
	if err != nil {
		return nil, err
	}
	return &AuthService{config: config, passwordHash: hash, logger: logger}, nil
}

// Claims are the JWT claims carried by an access token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login checks the credentials and returns a signed token with its expiry.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username != s.config.DemoUsername || !CheckPasswordHash(password, s.passwordHash) {
		s.logger.WarnContext(ctx, "Login failed", "username", username)
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.config.JWTExpiryHours) * time.Hour)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "callscreen",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sign access token", "error", err)
		return "", time.Time{}, err
	}
	s.logger.InfoContext(ctx, "Login succeeded", "username", username)
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies an access token, returning its claims.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
