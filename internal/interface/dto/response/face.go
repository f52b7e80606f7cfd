package response

import (
	"time"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	faceqry "github.com/Hiro-mackay/avatar-face/internal/usecase/face/query"
)

// FaceMetaResponse は処理済み画像のメタ情報レスポンス
type FaceMetaResponse struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	OffsetX  float64 `json:"offsetX"`
	OffsetY  float64 `json:"offsetY"`
}

// FaceResponse は顔画像プロファイルレスポンス
type FaceResponse struct {
	UserID           string            `json:"user_id"`
	FaceURL          *string           `json:"face_url"`
	FaceVersion      int               `json:"face_version"`
	FaceState        string            `json:"face_state"`
	FaceMeta         *FaceMetaResponse `json:"face_meta"`
	UploadCountToday int               `json:"upload_count_today"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// UploadFaceResponse は顔画像アップロードレスポンス
type UploadFaceResponse struct {
	UploadID    string           `json:"upload_id"`
	FaceURL     string           `json:"face_url"`
	FaceVersion int              `json:"face_version"`
	State       string           `json:"state"`
	Meta        FaceMetaResponse `json:"meta"`
}

// QuotaResponse はアップロード枠レスポンス
type QuotaResponse struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	ResetAt   time.Time `json:"reset_at"`
}

// UploadLogResponse はアップロード履歴レスポンス
type UploadLogResponse struct {
	UploadID      string    `json:"upload_id"`
	Outcome       string    `json:"outcome"`
	Reason        *string   `json:"reason,omitempty"`
	ProcessedPath *string   `json:"processed_path,omitempty"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RemoveFaceResponse は顔画像削除レスポンス
type RemoveFaceResponse struct {
	Face    *FaceResponse `json:"face"`
	Removed bool          `json:"removed"`
}

// ModerateFaceResponse はモデレーションレスポンス
type ModerateFaceResponse struct {
	Face          *FaceResponse `json:"face"`
	PreviousState string        `json:"previous_state"`
}

// ToFaceMetaResponse はメタ情報をレスポンスに変換します
func ToFaceMetaResponse(meta entity.FaceMeta) FaceMetaResponse {
	return FaceMetaResponse{
		Width:    meta.Width,
		Height:   meta.Height,
		Scale:    meta.Scale,
		Rotation: meta.Rotation,
		OffsetX:  meta.OffsetX,
		OffsetY:  meta.OffsetY,
	}
}

// ToFaceResponse はエンティティをレスポンスに変換します
func ToFaceResponse(profile *entity.FaceProfile) *FaceResponse {
	if profile == nil {
		return nil
	}
	resp := &FaceResponse{
		UserID:           profile.UserID.String(),
		FaceURL:          profile.FaceURL,
		FaceVersion:      profile.FaceVersion,
		FaceState:        profile.FaceState.String(),
		UploadCountToday: profile.UploadCountToday,
		UpdatedAt:        profile.UpdatedAt,
	}
	if profile.FaceMeta != nil {
		meta := ToFaceMetaResponse(*profile.FaceMeta)
		resp.FaceMeta = &meta
	}
	return resp
}

// ToUploadFaceResponse はアップロード結果をレスポンスに変換します
func ToUploadFaceResponse(output *facecmd.SubmitUploadOutput) *UploadFaceResponse {
	return &UploadFaceResponse{
		UploadID:    output.UploadID.String(),
		FaceURL:     output.FaceURL,
		FaceVersion: output.FaceVersion,
		State:       output.State.String(),
		Meta:        ToFaceMetaResponse(output.Meta),
	}
}

// ToQuotaResponse はアップロード枠をレスポンスに変換します
func ToQuotaResponse(output *faceqry.CheckQuotaOutput) *QuotaResponse {
	return &QuotaResponse{
		Allowed:   output.Allowed,
		Remaining: output.Remaining,
		Limit:     output.Limit,
		ResetAt:   output.ResetAt,
	}
}

// ToUploadLogResponse はアップロードログをレスポンスに変換します
func ToUploadLogResponse(log *entity.UploadLog) UploadLogResponse {
	return UploadLogResponse{
		UploadID:      log.UploadID.String(),
		Outcome:       string(log.Outcome),
		Reason:        log.Reason,
		ProcessedPath: log.ProcessedPath,
		FileSize:      log.FileSize,
		MimeType:      log.MimeType,
		CreatedAt:     log.CreatedAt,
		UpdatedAt:     log.UpdatedAt,
	}
}

// ToUploadLogListResponse はアップロードログ一覧をレスポンスに変換します
func ToUploadLogListResponse(logs []*entity.UploadLog) []UploadLogResponse {
	result := make([]UploadLogResponse, 0, len(logs))
	for _, log := range logs {
		result = append(result, ToUploadLogResponse(log))
	}
	return result
}
