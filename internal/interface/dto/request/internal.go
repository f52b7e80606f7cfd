package request

import "github.com/Hiro-mackay/avatar-face/internal/domain/entity"

// ProcessFaceRequest は処理関数の呼び出しリクエスト
type ProcessFaceRequest struct {
	UserID   string                `json:"user_id" validate:"required,uuid"`
	RawPath  string                `json:"raw_path" validate:"required,max=512"`
	UploadID string                `json:"upload_id" validate:"required,uuid"`
	FaceMeta *entity.FaceTransform `json:"face_meta"`
}

// ModerateFaceRequest はモデレーションリクエスト
type ModerateFaceRequest struct {
	State  string `json:"state" validate:"required,moderationstate"`
	Reason string `json:"reason" validate:"max=500"`
}
