package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/users-generator-api/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims carries the user id in "sub" and the token id in "jti"; the
// embedded RegisteredClaims supply iat and exp.
type Claims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	JTI    string `json:"jti"`
	jwt.RegisteredClaims
}

// ExpiresAtTime returns the expiry as a time.Time, or the zero time when
// the claim is absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
}

func NewManager(secret string, ttl time.Duration, revoked RevocationStore) *Manager {
	if revoked == nil {
		revoked = NewMemoryRevocations()
	}
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
	}
}

// Issue signs a new access token for user.
func (m *Manager) Issue(user *models.User) (string, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		JTI:    jti,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses tokenStr, checks signature, expiry and revocation, and
// returns its claims.
func (m *Manager) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || claims.JTI == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke invalidates the token identified by claims until it expires.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.JTI == "" {
		return ErrInvalidToken
	}
	return m.revoked.Revoke(ctx, claims.JTI, claims.ExpiresAtTime())
}
