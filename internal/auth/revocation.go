package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers revoked token ids until the token would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevocations is a process-local RevocationStore.
type MemoryRevocations struct {
	mu  sync.RWMutex
	m   map[string]time.Time
	now func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		m:   make(map[string]time.Time),
		now: time.Now,
	}
}

func (s *MemoryRevocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !expiresAt.After(s.now()) {
		return nil
	}

	s.mu.Lock()
	s.m[jti] = expiresAt
	s.mu.Unlock()
	return nil
}

func (s *MemoryRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	now := s.now()
	s.mu.RLock()
	exp, ok := s.m[jti]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if now.After(exp) {
		s.mu.Lock()
		delete(s.m, jti)
		s.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// Len returns the number of tracked entries, expired ones included.
func (s *MemoryRevocations) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

const revokedKeyPrefix = "usersgen:revoked:"

// RedisConfig holds the connection settings for RedisRevocations.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisRevocations shares revocations across instances through Redis keys
// that expire with the token.
type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(cfg RedisConfig) *RedisRevocations {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &RedisRevocations{client: client}
}

// Ping checks redis connectivity
func (s *RedisRevocations) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisRevocations) Close() error {
	return s.client.Close()
}

func (s *RedisRevocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (s *RedisRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
