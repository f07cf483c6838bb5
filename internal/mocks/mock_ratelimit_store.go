package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ryandt33/raptscallions-sub011/domain"
)

// MockRateLimitStore implements domain.RateLimitStore interface for testing.
// The default behavior is a correct in-memory fixed-window counter so
// middleware tests can exercise real limit arithmetic without Redis.
type MockRateLimitStore struct {
	TouchFunc func(ctx context.Context, key string, window time.Duration) (*domain.RateLimitResult, error)

	mu       sync.Mutex
	counts   map[string]int64
	deadline map[string]time.Time
}

// NewMockRateLimitStore creates a new MockRateLimitStore
func NewMockRateLimitStore() *MockRateLimitStore {
	return &MockRateLimitStore{
		counts:   make(map[string]int64),
		deadline: make(map[string]time.Time),
	}
}

// Touch increments the counter for key
func (m *MockRateLimitStore) Touch(ctx context.Context, key string, window time.Duration) (*domain.RateLimitResult, error) {
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, key, window)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if dl, ok := m.deadline[key]; !ok || now.After(dl) {
		m.counts[key] = 0
		m.deadline[key] = now.Add(window)
	}
	m.counts[key]++

	return &domain.RateLimitResult{
		Count:     m.counts[key],
		Remaining: m.deadline[key].Sub(now),
	}, nil
}

// Keys returns the touched counter keys, for assertions about key derivation
func (m *MockRateLimitStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.counts))
	for k := range m.counts {
		keys = append(keys, k)
	}
	return keys
}

// Compile-time interface compliance verification
var _ domain.RateLimitStore = (*MockRateLimitStore)(nil)
