package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// MockUploadLogRepository is a mock of repository.UploadLogRepository
type MockUploadLogRepository struct {
	mock.Mock
}

func NewMockUploadLogRepository(t *testing.T) *MockUploadLogRepository {
	m := &MockUploadLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUploadLogRepository) Create(ctx context.Context, log *entity.UploadLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockUploadLogRepository) FindByUploadID(ctx context.Context, uploadID uuid.UUID) (*entity.UploadLog, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UploadLog), args.Error(1)
}

func (m *MockUploadLogRepository) Finalize(ctx context.Context, log *entity.UploadLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockUploadLogRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UploadLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UploadLog), args.Error(1)
}

func (m *MockUploadLogRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadLogRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.UploadLog, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UploadLog), args.Error(1)
}

func (m *MockUploadLogRepository) HasPendingByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
