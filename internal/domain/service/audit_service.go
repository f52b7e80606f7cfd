package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// AuditService は顔画像への操作を監査ログに残します
// 書き込みは非同期で、失敗しても呼び出し元の処理は止めません
type AuditService interface {
	Log(ctx context.Context, entry AuditEntry)
}

// AuditEntry は監査ログ1件分の入力です
// IPAddress/UserAgent/RequestID はHTTP経由の操作でだけ埋まります
type AuditEntry struct {
	UserID       *uuid.UUID
	Action       entity.AuditAction
	ResourceType entity.AuditResourceType
	ResourceID   *uuid.UUID
	Details      map[string]interface{}

	IPAddress string
	UserAgent string
	RequestID string
}

// SystemAuditEntry はリクエストを伴わない操作（整合処理など）の記録を作ります
func SystemAuditEntry(action entity.AuditAction, userID uuid.UUID, resourceType entity.AuditResourceType, resourceID uuid.UUID, details map[string]interface{}) AuditEntry {
	return AuditEntry{
		UserID:       &userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &resourceID,
		Details:      details,
	}
}
