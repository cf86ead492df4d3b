package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/auth"
	"github.com/users-generator-api/internal/config"
	"github.com/users-generator-api/internal/generator"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/repository"
	"github.com/users-generator-api/internal/security"
)

// TokenManager issues, verifies and revokes access tokens. *auth.Manager
// implements it.
type TokenManager interface {
	Issue(user *models.User) (string, error)
	Verify(ctx context.Context, token string) (*auth.Claims, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// ImportService defines the interface for batch imports
type ImportService interface {
	ImportFile(ctx context.Context, r io.Reader) (*models.ImportOutcome, error)
	ImportBatch(ctx context.Context, records []map[string]interface{}) *models.ImportOutcome
}

// GeneratorService defines the interface for synthetic profile generation
type GeneratorService interface {
	Generate(ctx context.Context, count int) ([]models.GeneratedProfile, error)
}

// AuthService defines the interface for login and token lifecycle
type AuthService interface {
	Authenticate(ctx context.Context, identifier, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*auth.Claims, error)
	Refresh(ctx context.Context, claims *auth.Claims) (string, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// UserService defines the interface for profile lookups
type UserService interface {
	Me(ctx context.Context, userID string) (*models.User, error)
	ViewProfile(ctx context.Context, requesterID, username string) (*models.User, error)
	SeedDefaults(ctx context.Context, password string) error
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Import    ImportService
	Generator GeneratorService
	Auth      AuthService
	User      UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, tokens TokenManager, prom *metrics.Prom, cfg *config.Config, log zerolog.Logger) *Services {
	hasher := security.NewHasher(cfg.Auth.BcryptCost)
	gen := generator.New(cfg.Generator.MaxCount)

	return &Services{
		Import:    newImportService(repos, hasher, prom, log),
		Generator: newGeneratorService(gen, prom, log),
		Auth:      newAuthService(repos, hasher, tokens, prom, log),
		User:      newUserService(repos, hasher, gen, log),
	}
}
