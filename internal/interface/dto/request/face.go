package request

import "github.com/Hiro-mackay/avatar-face/internal/domain/entity"

// UploadFaceRequest は顔画像アップロードの変形パラメータ
// multipart のフォーム値から組み立てます（ファイル本体は別途取得）
type UploadFaceRequest struct {
	Scale    *float64 `form:"scale" validate:"omitempty,finite,gt=0,lte=10"`
	Rotation *float64 `form:"rotation" validate:"omitempty,finite,gte=-360,lte=360"`
	OffsetX  *float64 `form:"offset_x" validate:"omitempty,finite"`
	OffsetY  *float64 `form:"offset_y" validate:"omitempty,finite"`
}

// Transform は変形パラメータをドメインの型に変換します
// 何も指定されていなければnilを返します
func (r UploadFaceRequest) Transform() *entity.FaceTransform {
	if r.Scale == nil && r.Rotation == nil && r.OffsetX == nil && r.OffsetY == nil {
		return nil
	}
	return &entity.FaceTransform{
		Scale:    r.Scale,
		Rotation: r.Rotation,
		OffsetX:  r.OffsetX,
		OffsetY:  r.OffsetY,
	}
}

// ListUploadLogsRequest はアップロード履歴取得リクエスト
type ListUploadLogsRequest struct {
	Page    int `query:"page" validate:"omitempty,gte=1"`
	PerPage int `query:"per_page" validate:"omitempty,gte=1,lte=100"`
}
