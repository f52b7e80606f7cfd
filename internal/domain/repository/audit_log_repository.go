package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// AuditLogRepository は監査ログの永続化インターフェースです
// 顔画像の削除・モデレーション・整合処理の記録を残します
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// ListByResource はリソース（プロファイルやアップロード）ごとの記録を新しい順に取得します
	ListByResource(ctx context.Context, resourceType entity.AuditResourceType, resourceID uuid.UUID, limit int) ([]*entity.AuditLog, error)
}
