package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/auth"
)

// TokenVerifier is the part of the auth service the middleware needs
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*auth.Claims, error)
}

const ctxClaimsKey = "auth.claims"

const unauthenticatedMessage = "Unauthenticated."

// requireAuth rejects requests without a valid, unrevoked bearer token and
// stores the token claims on the context.
func requireAuth(verifier TokenVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthenticatedMessage})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthenticatedMessage})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenRevoked) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthenticatedMessage})
				return
			}
			log.Error().Err(err).Msg("Token verification failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// claimsFromContext returns the claims stored by requireAuth
func claimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}
