package response

import (
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
)

// ProcessFaceResponse は処理関数の成功レスポンス
// 内部RPCのため presenter.Response では包みません
type ProcessFaceResponse struct {
	OK          bool             `json:"ok"`
	FaceURL     string           `json:"face_url"`
	FaceVersion int              `json:"face_version"`
	State       string           `json:"state"`
	Meta        FaceMetaResponse `json:"meta"`
}

// ProcessFaceErrorResponse は処理関数の失敗レスポンス
type ProcessFaceErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToProcessFaceResponse は処理結果をレスポンスに変換します
func ToProcessFaceResponse(output *facecmd.ProcessUploadOutput) *ProcessFaceResponse {
	return &ProcessFaceResponse{
		OK:          true,
		FaceURL:     output.FaceURL,
		FaceVersion: output.FaceVersion,
		State:       output.State.String(),
		Meta:        ToFaceMetaResponse(output.Meta),
	}
}
