package mocks

import (
	"context"
	"sync"
)

// MockDatabase stands in for *database.DB where only the health check is
// needed.
type MockDatabase struct {
	mu sync.Mutex

	PingError error
	PingCalls int
}

func (m *MockDatabase) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PingCalls++
	return m.PingError
}
