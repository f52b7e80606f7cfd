package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
)

// ProcessRequest は処理関数への入力です
type ProcessRequest struct {
	UserID   uuid.UUID
	RawPath  string
	UploadID uuid.UUID
	FaceMeta *entity.FaceTransform
}

// ProcessResult は処理関数の成功結果です
type ProcessResult struct {
	FaceURL     string
	FaceVersion int
	State       entity.FaceState
	Meta        entity.FaceMeta
}

// ProcessingClient は処理関数の呼び出しを抽象化します
// 失敗は apperror.AppError で返し、却下はPROCESSING_REJECTED、通信失敗はPROCESSING_UNAVAILABLEです
type ProcessingClient interface {
	Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
}
