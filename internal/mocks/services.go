package mocks

import (
	"bytes"
	"context"
	"io"

	"github.com/users-generator-api/internal/auth"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/service"
)

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ImportFileFunc func(ctx context.Context, r io.Reader) (*models.ImportOutcome, error)
	Payloads       [][]byte
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{}
}

func (m *MockImportService) ImportFile(ctx context.Context, r io.Reader) (*models.ImportOutcome, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.Payloads = append(m.Payloads, data)
	if m.ImportFileFunc != nil {
		return m.ImportFileFunc(ctx, bytes.NewReader(data))
	}
	return &models.ImportOutcome{}, nil
}

func (m *MockImportService) ImportBatch(ctx context.Context, records []map[string]interface{}) *models.ImportOutcome {
	return &models.ImportOutcome{Total: len(records), Failed: len(records)}
}

// MockGeneratorService is a mock implementation of GeneratorService
type MockGeneratorService struct {
	GenerateFunc func(ctx context.Context, count int) ([]models.GeneratedProfile, error)
	Counts       []int
}

var _ service.GeneratorService = (*MockGeneratorService)(nil)

func NewMockGeneratorService() *MockGeneratorService {
	return &MockGeneratorService{}
}

func (m *MockGeneratorService) Generate(ctx context.Context, count int) ([]models.GeneratedProfile, error) {
	m.Counts = append(m.Counts, count)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, count)
	}
	return make([]models.GeneratedProfile, count), nil
}

// MockAuthService is a mock implementation of AuthService. Tokens map raw
// bearer strings to the claims VerifyToken returns.
type MockAuthService struct {
	AuthenticateFunc func(ctx context.Context, identifier, password string) (string, error)
	RefreshFunc      func(ctx context.Context, claims *auth.Claims) (string, error)
	LogoutError      error
	VerifyError      error
	Tokens           map[string]*auth.Claims
	LoggedOut        []string
}

var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Tokens: make(map[string]*auth.Claims),
	}
}

func (m *MockAuthService) Authenticate(ctx context.Context, identifier, password string) (string, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, identifier, password)
	}
	return "", models.ErrInvalidCredentials
}

func (m *MockAuthService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	claims, ok := m.Tokens[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, claims)
	}
	return "refreshed-token", nil
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if m.LogoutError != nil {
		return m.LogoutError
	}
	m.LoggedOut = append(m.LoggedOut, claims.JTI)
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	MeFunc          func(ctx context.Context, userID string) (*models.User, error)
	ViewProfileFunc func(ctx context.Context, requesterID, username string) (*models.User, error)
	CountResult     int
	CountError      error
	SeedPasswords   []string
}

var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) Me(ctx context.Context, userID string) (*models.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, models.ErrUnauthenticated
}

func (m *MockUserService) ViewProfile(ctx context.Context, requesterID, username string) (*models.User, error) {
	if m.ViewProfileFunc != nil {
		return m.ViewProfileFunc(ctx, requesterID, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) SeedDefaults(ctx context.Context, password string) error {
	m.SeedPasswords = append(m.SeedPasswords, password)
	return nil
}

func (m *MockUserService) Count(ctx context.Context) (int, error) {
	return m.CountResult, m.CountError
}
