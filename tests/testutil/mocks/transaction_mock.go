package mocks

import (
	"context"
	"sync"
	"testing"
)

// MockTransactionManager runs fn inline and records how often a transaction was opened.
// Set BeginErr to make the next transactions fail before fn runs.
type MockTransactionManager struct {
	mu       sync.Mutex
	calls    int
	BeginErr error
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	t.Helper()
	return &MockTransactionManager{}
}

// WithTransaction executes fn without a real transaction
func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	beginErr := m.BeginErr
	m.mu.Unlock()

	if beginErr != nil {
		return beginErr
	}
	return fn(ctx)
}

// Calls returns the number of WithTransaction invocations
func (m *MockTransactionManager) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
