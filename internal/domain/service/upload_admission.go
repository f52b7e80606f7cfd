package service

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/Hiro-mackay/avatar-face/internal/domain/valueobject"
)

// MaxUploadSize はアップロードできるファイルサイズの上限（5MiB）
const MaxUploadSize int64 = 5 * 1024 * 1024

// アドミッション違反の理由
const (
	ReasonFileTooLarge    = "File size exceeds 5MB limit"
	ReasonInvalidFileType = "Invalid file type. Allowed: jpeg, jpg, png, webp"
)

// AdmissionError はサイズ・MIMEタイプの違反を表します
type AdmissionError struct {
	Field  string
	Reason string
}

// Error はerrorインターフェースを実装します
func (e *AdmissionError) Error() string {
	return e.Reason
}

// ValidateUpload はファイルサイズとMIMEタイプを検証します
// サイズを先に検査し、最初に違反したルールを返します
func ValidateUpload(fileSize int64, mimeType string) error {
	if fileSize > MaxUploadSize {
		return &AdmissionError{Field: "file", Reason: ReasonFileTooLarge}
	}
	if !valueobject.IsAllowedMimeType(mimeType) {
		return &AdmissionError{Field: "mime_type", Reason: ReasonInvalidFileType}
	}
	return nil
}

// ValidateContent はバイト列そのものを再検証し、実際のMIMEタイプを返します
// 申告されたタイプが正しくても、中身が許可された画像でなければ却下します
func ValidateContent(data []byte, declaredMimeType string) (valueobject.MimeType, error) {
	if err := ValidateUpload(int64(len(data)), declaredMimeType); err != nil {
		return valueobject.MimeType{}, err
	}

	detected, err := valueobject.NewMimeType(mimetype.Detect(data).String())
	if err != nil {
		return valueobject.MimeType{}, &AdmissionError{Field: "file", Reason: ReasonInvalidFileType}
	}
	return detected, nil
}
