package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// MockFaceProfileRepository is a mock of repository.FaceProfileRepository
type MockFaceProfileRepository struct {
	mock.Mock
}

func NewMockFaceProfileRepository(t *testing.T) *MockFaceProfileRepository {
	m := &MockFaceProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFaceProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FaceProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FaceProfile), args.Error(1)
}

func (m *MockFaceProfileRepository) EnsureExists(ctx context.Context, userID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

func (m *MockFaceProfileRepository) ResetUploadWindow(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockFaceProfileRepository) ClaimUploadSlot(ctx context.Context, userID uuid.UUID, limit int, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, limit, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockFaceProfileRepository) CommitApproved(ctx context.Context, profile *entity.FaceProfile, expectedVersion int) error {
	args := m.Called(ctx, profile, expectedVersion)
	return args.Error(0)
}

func (m *MockFaceProfileRepository) SaveState(ctx context.Context, profile *entity.FaceProfile, expectedState entity.FaceState) error {
	args := m.Called(ctx, profile, expectedState)
	return args.Error(0)
}

func (m *MockFaceProfileRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.FaceProfile, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FaceProfile), args.Error(1)
}
