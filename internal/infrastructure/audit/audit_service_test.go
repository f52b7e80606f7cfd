package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
	"github.com/Hiro-mackay/avatar-face/tests/testutil/mocks"
)

func TestService_Log_PersistsEntryWithRequestID(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository(t)
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.AuditLog) bool {
		return l.Action == entity.AuditActionFaceRemove &&
			l.ResourceType == entity.AuditResourceFaceProfile &&
			*l.UserID == userID &&
			l.RequestID == "req-123" &&
			l.ID != uuid.Nil
	})).Return(nil).Once()

	svc := NewService(repo, 4)
	ctx := logger.ContextWithRequestID(context.Background(), "req-123")
	svc.Log(ctx, service.AuditEntry{
		UserID:       &userID,
		Action:       entity.AuditActionFaceRemove,
		ResourceType: entity.AuditResourceFaceProfile,
		ResourceID:   &userID,
	})
	svc.Shutdown()
}

func TestService_Log_RepositoryErrorDoesNotStopLoop(t *testing.T) {
	repo := mocks.NewMockAuditLogRepository(t)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.AuditLog")).Return(errors.New("db down")).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.AuditLog")).Return(nil).Once()

	svc := NewService(repo, 4)
	for i := 0; i < 2; i++ {
		svc.Log(context.Background(), service.AuditEntry{
			Action:       entity.AuditActionFaceReconcile,
			ResourceType: entity.AuditResourceUploadLog,
		})
	}
	svc.Shutdown()

	assert.Len(t, repo.Calls, 2)
}
