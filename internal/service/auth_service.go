package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/auth"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/repository"
	"github.com/users-generator-api/internal/security"
	"github.com/users-generator-api/internal/validation"
)

type authService struct {
	repos   *repository.Repositories
	hasher  *security.Hasher
	tokens  TokenManager
	metrics *metrics.Prom
	log     zerolog.Logger

	// compared against when the identity is unknown so both failure paths
	// pay for one bcrypt comparison
	dummyHash string
}

func newAuthService(repos *repository.Repositories, hasher *security.Hasher, tokens TokenManager, prom *metrics.Prom, log zerolog.Logger) *authService {
	l := log.With().Str("service", "auth").Logger()

	dummy, err := hasher.Hash("users-generator-dummy")
	if err != nil {
		l.Warn().Err(err).Msg("Failed to prepare dummy password hash")
	}

	return &authService{
		repos:     repos,
		hasher:    hasher,
		tokens:    tokens,
		metrics:   prom,
		log:       l,
		dummyHash: dummy,
	}
}

// Authenticate looks the identifier up by email when it is shaped like one
// and by username otherwise. Unknown identities and wrong passwords both
// yield models.ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, identifier, password string) (string, error) {
	var (
		user *models.User
		err  error
	)
	if validation.IsEmail(identifier) {
		user, err = s.repos.User.GetByEmail(ctx, identifier)
	} else {
		user, err = s.repos.User.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		_, _ = s.hasher.Check(s.dummyHash, password)
		s.observe(false)
		return "", models.ErrInvalidCredentials
	}

	ok, err := s.hasher.Check(user.PasswordHash, password)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("Stored password hash is unusable")
	}
	if !ok {
		s.observe(false)
		return "", models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.observe(true)
	s.log.Info().Str("user_id", user.ID).Msg("User authenticated")
	return token, nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	return s.tokens.Verify(ctx, token)
}

// Refresh issues a new token for the same user, then revokes the presented
// one. The old token stays valid if signing fails.
func (s *authService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	user, err := s.repos.User.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", models.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return "", fmt.Errorf("failed to revoke token: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Msg("Token refreshed")
	return token, nil
}

// Logout revokes the presented token.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log.Debug().Str("user_id", claims.UserID).Msg("User logged out")
	return nil
}

func (s *authService) observe(ok bool) {
	if s.metrics != nil {
		s.metrics.ObserveAuth(ok)
	}
}
