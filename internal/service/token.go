package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
)

// TokenManager issues and verifies access tokens. The role claim records
// which login path issued the token.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// Issue signs an access token for p and returns it with its expiry.
func (m *TokenManager) Issue(p authz.Principal) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.accessTTL)

	claims := jwt.MapClaims{
		"sub":  p.ID.String(),
		"role": string(p.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return token, exp, nil
}

// ParseAccess verifies the token and returns the principal it carries.
func (m *TokenManager) ParseAccess(token string) (authz.Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return authz.Principal{}, fmt.Errorf("token: invalid: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Principal{}, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return authz.Principal{}, jwt.ErrTokenInvalidClaims
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return authz.Principal{}, jwt.ErrTokenInvalidClaims
	}

	role, _ := claims["role"].(string)
	if !authz.Role(role).IsValid() {
		return authz.Principal{}, jwt.ErrTokenInvalidClaims
	}

	return authz.Principal{ID: id, Role: authz.Role(role)}, nil
}
