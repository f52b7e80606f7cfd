package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// FaceProfileRepository は顔画像プロファイルの永続化インターフェースです
type FaceProfileRepository interface {
	// FindByUserID はユーザーIDでプロファイルを取得します（なければNOT_FOUND）
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FaceProfile, error)

	// EnsureExists は既定値のプロファイルを作成します（既存なら何もしません）
	EnsureExists(ctx context.Context, userID uuid.UUID, now time.Time) error

	// ResetUploadWindow はウィンドウが切れているときだけカウンタを0にしてウィンドウを now から開始します
	// 他のリクエストが先にリセットしていれば何もせず false を返します
	ResetUploadWindow(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)

	// ClaimUploadSlot はカウンタが limit 未満のときだけ1増やし、状態を pending にします
	// 1行の条件付きUPDATEで行い、枠を取れなかった場合は false を返します
	ClaimUploadSlot(ctx context.Context, userID uuid.UUID, limit int, now time.Time) (bool, error)

	// CommitApproved は face_version が expectedVersion で、状態が pending か approved のときだけ処理結果を反映します
	// 条件を満たさない場合はCONFLICTを返します
	CommitApproved(ctx context.Context, profile *entity.FaceProfile, expectedVersion int) error

	// SaveState は状態が expectedState のときだけ状態・パス・URL・メタを保存します
	// 一致しない場合はCONFLICTを返します
	SaveState(ctx context.Context, profile *entity.FaceProfile, expectedState entity.FaceState) error

	// ListStalePending は before より前から pending のプロファイルを取得します
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.FaceProfile, error)
}
