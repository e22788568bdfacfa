package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reignagency/reign/internal/config"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Session is a persisted refresh token; signing out revokes it.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         User
}

func (u Usecase) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	user, err := u.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	access, err := generateToken(user, AccessToken,
		os.Getenv(config.ENV_KEY_ACCESS_TOKEN_SECRET),
		tokenExpiry(config.ENV_KEY_ACCESS_TOKEN_EXPIRES, 15*time.Minute))
	if err != nil {
		return AuthResult{}, err
	}

	refresh, err := generateToken(user, RefreshToken,
		os.Getenv(config.ENV_KEY_REFRESH_TOKEN_SECRET),
		tokenExpiry(config.ENV_KEY_REFRESH_TOKEN_EXPIRES, 7*24*time.Hour))
	if err != nil {
		return AuthResult{}, err
	}

	if _, err := u.repo.CreateSession(ctx, Session{
		UserID: user.ID,
		Token:  refresh,
	}); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// RefreshSession issues a fresh access token for a valid, unrevoked
// refresh token.
func (u Usecase) RefreshSession(ctx context.Context, refreshToken string) (AuthResult, error) {
	claims, err := validateToken(refreshToken, os.Getenv(config.ENV_KEY_REFRESH_TOKEN_SECRET), RefreshToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	session, err := u.repo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || session.UserID != userID {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := u.repo.GetUserByID(ctx, userID)
	if err != nil {
		return AuthResult{}, err
	}

	access, err := generateToken(user, AccessToken,
		os.Getenv(config.ENV_KEY_ACCESS_TOKEN_SECRET),
		tokenExpiry(config.ENV_KEY_ACCESS_TOKEN_EXPIRES, 15*time.Minute))
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		AccessToken:  access,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u Usecase) SignOut(ctx context.Context, refreshToken string) error {
	return u.repo.DeleteSession(ctx, refreshToken)
}

// VerifyAccessToken is used by the HTTP auth middleware.
func (u Usecase) VerifyAccessToken(_ context.Context, token string) (Claims, error) {
	claims, err := validateToken(token, os.Getenv(config.ENV_KEY_ACCESS_TOKEN_SECRET), AccessToken)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return *claims, nil
}

func generateToken(user User, t TokenType, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    user.ID.String(),
		Role:      user.Role,
		TokenType: t,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func validateToken(tokenString, secret string, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != expected {
		return nil, fmt.Errorf("expected %s token, got %s", expected, claims.TokenType)
	}

	return claims, nil
}

func tokenExpiry(envKey string, fallback time.Duration) time.Duration {
	if v := os.Getenv(envKey); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
