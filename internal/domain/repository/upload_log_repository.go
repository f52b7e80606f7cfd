package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// UploadLogRepository はアップロードログの永続化インターフェースです
type UploadLogRepository interface {
	// Create はアップロードログを作成します
	Create(ctx context.Context, log *entity.UploadLog) error
	// FindByUploadID はアップロードIDでログを取得します（なければNOT_FOUND）
	FindByUploadID(ctx context.Context, uploadID uuid.UUID) (*entity.UploadLog, error)
	// Finalize は pending のログだけを確定させます（確定済みならCONFLICT）
	Finalize(ctx context.Context, log *entity.UploadLog) error
	// ListByUserID はユーザーのログを新しい順に取得します
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UploadLog, error)
	// CountByUserID はユーザーのログ数を取得します
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	// ListStalePending は before より前に作成された pending のログを取得します
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.UploadLog, error)
	// HasPendingByUserID はユーザーに pending のログがあるかどうかを判定します
	HasPendingByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}
