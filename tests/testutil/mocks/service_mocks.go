package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
)

// MockAssetStore is a mock of service.AssetStore
type MockAssetStore struct {
	mock.Mock
}

func NewMockAssetStore(t *testing.T) *MockAssetStore {
	m := &MockAssetStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAssetStore) PutNew(ctx context.Context, path string, data []byte, contentType string) error {
	args := m.Called(ctx, path, data, contentType)
	return args.Error(0)
}

func (m *MockAssetStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	args := m.Called(ctx, path, data, contentType)
	return args.Error(0)
}

func (m *MockAssetStore) Get(ctx context.Context, path string) (*service.Asset, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Asset), args.Error(1)
}

func (m *MockAssetStore) PublicURL(path string) string {
	args := m.Called(path)
	return args.String(0)
}

// MockProcessingClient is a mock of service.ProcessingClient
type MockProcessingClient struct {
	mock.Mock
}

func NewMockProcessingClient(t *testing.T) *MockProcessingClient {
	m := &MockProcessingClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProcessingClient) Process(ctx context.Context, req service.ProcessRequest) (*service.ProcessResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessResult), args.Error(1)
}

// MockEventPublisher is a mock of service.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event service.FaceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockProcessingLock is a mock of service.ProcessingLock
type MockProcessingLock struct {
	mock.Mock
}

func NewMockProcessingLock(t *testing.T) *MockProcessingLock {
	m := &MockProcessingLock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProcessingLock) Acquire(ctx context.Context, userID uuid.UUID) (func(context.Context) error, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

// NoopRelease is a release func for MockProcessingLock expectations
func NoopRelease(context.Context) error { return nil }
