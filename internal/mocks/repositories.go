package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/repository"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// Setting an error field makes the matching calls fail.
type MockUserRepository struct {
	mu sync.RWMutex

	Users          map[string]*models.User
	UsernameToUser map[string]*models.User
	EmailToUser    map[string]*models.User
	InsertError    error
	LookupError    error
	ExistsError    error
	CreateFunc     func(ctx context.Context, user *models.User) error
	CreateCalls    int
	InsertedCount  int
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:          make(map[string]*models.User),
		UsernameToUser: make(map[string]*models.User),
		EmailToUser:    make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, user); err != nil {
			return err
		}
	}
	if m.InsertError != nil {
		return m.InsertError
	}

	email := strings.ToLower(user.Email)
	if _, ok := m.UsernameToUser[user.Username]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := m.EmailToUser[email]; ok {
		return repository.ErrDuplicate
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	m.Users[user.ID] = user
	m.UsernameToUser[user.Username] = user
	m.EmailToUser[email] = user
	m.InsertedCount++
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.UsernameToUser[username], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.EmailToUser[strings.ToLower(email)], nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	_, exists := m.UsernameToUser[username]
	return exists, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	_, exists := m.EmailToUser[strings.ToLower(email)]
	return exists, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LookupError != nil {
		return 0, m.LookupError
	}
	return len(m.Users), nil
}
