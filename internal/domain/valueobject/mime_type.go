package valueobject

import (
	"errors"
	"strings"
)

var (
	ErrInvalidMimeType = errors.New("invalid MIME type")
)

// 顔画像として受け付けるMIMEタイプ
var allowedFaceMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// MimeType は顔画像のMIMEタイプを表す値オブジェクト
type MimeType struct {
	value string
}

// NewMimeType は文字列からMimeTypeを生成します
// 許可されていないタイプはErrInvalidMimeTypeを返します
func NewMimeType(mimeType string) (MimeType, error) {
	value := NormalizeMimeType(mimeType)
	if _, ok := allowedFaceMimeTypes[value]; !ok {
		return MimeType{}, ErrInvalidMimeType
	}
	return MimeType{value: value}, nil
}

// NormalizeMimeType は小文字化・パラメータ除去を行い、拡張子だけの指定（jpeg, png など）を image/* に揃えます
func NormalizeMimeType(mimeType string) string {
	value := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(value, ";"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}
	if value != "" && !strings.Contains(value, "/") {
		value = "image/" + value
	}
	return value
}

// IsAllowedMimeType は顔画像として許可されたMIMEタイプかどうかを判定します
func IsAllowedMimeType(mimeType string) bool {
	_, ok := allowedFaceMimeTypes[NormalizeMimeType(mimeType)]
	return ok
}

// Value は値を返します
func (m MimeType) Value() string {
	return m.value
}

// String は文字列を返します（Stringerインターフェース）
func (m MimeType) String() string {
	return m.value
}

// ContentType はストレージに保存する際のContent-Typeを返します
// image/jpg は正式名の image/jpeg に揃えます
func (m MimeType) ContentType() string {
	if m.value == "image/jpg" {
		return "image/jpeg"
	}
	return m.value
}

// CanonicalExt は処理済みアセットに使う拡張子を返します
func (m MimeType) CanonicalExt() string {
	switch m.value {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return ""
	}
}

// Equals は等価性を判定します
func (m MimeType) Equals(other MimeType) bool {
	return m.ContentType() == other.ContentType()
}

// 一般的なMIMEタイプ定数
var (
	MimeTypeImageJPEG = MimeType{value: "image/jpeg"}
	MimeTypeImagePNG  = MimeType{value: "image/png"}
	MimeTypeImageWebP = MimeType{value: "image/webp"}
)
