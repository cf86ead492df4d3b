package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/auth"
	"github.com/users-generator-api/internal/config"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/mocks"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/repository"
	"github.com/users-generator-api/internal/security"
	"github.com/users-generator-api/internal/service"
	"golang.org/x/crypto/bcrypt"
)

type testHarness struct {
	services *service.Services
	userRepo *mocks.MockUserRepository
	tokens   *auth.Manager
	prom     *metrics.Prom
}

func testConfig() *config.Config {
	return &config.Config{
		Import:    config.ImportConfig{MaxUploadSize: 10 * 1024},
		Generator: config.GeneratorConfig{MaxCount: 100},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	repos := &repository.Repositories{User: userRepo}
	cfg := testConfig()
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, auth.NewMemoryRevocations())
	prom := metrics.New()

	return &testHarness{
		services: service.NewServices(repos, tokens, prom, cfg, zerolog.Nop()),
		userRepo: userRepo,
		tokens:   tokens,
		prom:     prom,
	}
}

// addUser stores a user with a bcrypt hash of password
func (h *testHarness) addUser(t *testing.T, username, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := security.NewHasher(bcrypt.MinCost).Hash(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	u := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		BirthDate:    "1990-01-15",
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := h.userRepo.Create(context.Background(), u); err != nil {
		t.Fatalf("create %s failed: %v", username, err)
	}
	return u
}

func validRecord(username, email string) map[string]interface{} {
	return map[string]interface{}{
		"firstName":   "John",
		"lastName":    "Doe",
		"birthDate":   "1990-01-15",
		"city":        "Paris",
		"country":     "FR",
		"avatar":      "https://via.placeholder.com/150",
		"company":     "ACME Inc",
		"jobPosition": "Developer",
		"mobile":      "+33612345678",
		"username":    username,
		"email":       email,
		"password":    "secret12",
		"role":        "user",
	}
}
