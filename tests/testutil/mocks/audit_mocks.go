package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
)

// MockAuditLogRepository is a mock of repository.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func NewMockAuditLogRepository(t *testing.T) *MockAuditLogRepository {
	m := &MockAuditLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error) {
	args := m.Called(ctx, resourceType, resourceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AuditLog), args.Error(1)
}

// MockAuditService is a mock of service.AuditService
type MockAuditService struct {
	mock.Mock
}

func NewMockAuditService(t *testing.T) *MockAuditService {
	m := &MockAuditService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditService) Log(ctx context.Context, entry service.AuditEntry) {
	m.Called(ctx, entry)
}
