package entity

// FaceOutputSize は処理済み画像の一辺のピクセル数
const FaceOutputSize = 512

// 変形パラメータの既定値
const (
	DefaultFaceScale    = 1.0
	DefaultFaceRotation = 0.0
	DefaultFaceOffset   = 0.0
)

// FaceMeta は処理済み画像の寸法とエディタの変形パラメータです
type FaceMeta struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	OffsetX  float64 `json:"offsetX"`
	OffsetY  float64 `json:"offsetY"`
}

// FaceTransform はクライアントから届く変形パラメータです
// 省略されたフィールドはnilです
type FaceTransform struct {
	Scale    *float64 `json:"scale,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	OffsetX  *float64 `json:"offsetX,omitempty"`
	OffsetY  *float64 `json:"offsetY,omitempty"`
}

// NormalizeFaceMeta は省略値を既定値で埋め、出力寸法を固定したFaceMetaを返します
func NormalizeFaceMeta(t *FaceTransform) FaceMeta {
	meta := FaceMeta{
		Width:    FaceOutputSize,
		Height:   FaceOutputSize,
		Scale:    DefaultFaceScale,
		Rotation: DefaultFaceRotation,
		OffsetX:  DefaultFaceOffset,
		OffsetY:  DefaultFaceOffset,
	}
	if t == nil {
		return meta
	}

	if t.Scale != nil {
		meta.Scale = *t.Scale
	}
	if t.Rotation != nil {
		meta.Rotation = *t.Rotation
	}
	if t.OffsetX != nil {
		meta.OffsetX = *t.OffsetX
	}
	if t.OffsetY != nil {
		meta.OffsetY = *t.OffsetY
	}
	return meta
}
