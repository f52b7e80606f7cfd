package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode はエラーコードを表します
type ErrorCode string

const (
	CodeValidationError       ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest        ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	CodeForbidden             ErrorCode = "FORBIDDEN"
	CodeQuotaExceeded         ErrorCode = "QUOTA_EXCEEDED"
	CodeNotFound              ErrorCode = "NOT_FOUND"
	CodeConflict              ErrorCode = "CONFLICT"
	CodeRateLimitExceeded     ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeStorageUnavailable    ErrorCode = "STORAGE_UNAVAILABLE"
	CodeProcessingUnavailable ErrorCode = "PROCESSING_UNAVAILABLE"
	CodeProcessingRejected    ErrorCode = "PROCESSING_REJECTED"
	CodeInternalError         ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable    ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError はアプリケーションエラーを表します
type AppError struct {
	Code       ErrorCode    `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	HTTPStatus int          `json:"-"`
	Err        error        `json:"-"`
}

// FieldError はフィールドエラーを表します
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error はerrorインターフェースを実装します
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap は元のエラーを返します
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError はバリデーションエラーを作成します
// アップロードのアドミッション違反（サイズ・MIMEタイプ）もこのコードで返します
func NewValidationError(message string, details []FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestError は不正リクエストエラーを作成します
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError は認証エラーを作成します
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError は権限エラーを作成します
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewQuotaExceededError はクォータ超過エラーを作成します
func NewQuotaExceededError(message string) *AppError {
	return &AppError{
		Code:       CodeQuotaExceeded,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewNotFoundError はリソース不在エラーを作成します
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError は競合エラーを作成します
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewConflictErrorFrom は原因となる番兵エラーを保持した競合エラーを作成します
// 呼び出し側は errors.Is で原因を判別できます
func NewConflictErrorFrom(cause error) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    cause.Error(),
		HTTPStatus: http.StatusConflict,
		Err:        cause,
	}
}

// NewTooManyRequestsError はレート制限エラーを作成します
func NewTooManyRequestsError(message string) *AppError {
	return &AppError{
		Code:       CodeRateLimitExceeded,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewStorageUnavailableError はオブジェクトストレージ障害エラーを作成します
func NewStorageUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:       CodeStorageUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewProcessingUnavailableError は処理関数の呼び出し失敗エラーを作成します
func NewProcessingUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:       CodeProcessingUnavailable,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewProcessingRejectedError は処理関数による拒否エラーを作成します
func NewProcessingRejectedError(reason string) *AppError {
	return &AppError{
		Code:       CodeProcessingRejected,
		Message:    reason,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewInternalError は内部エラーを作成します
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromCode はエラーコードとメッセージからAppErrorを復元します
// 処理関数のレスポンスなど、境界を越えて届いたコードの復元に使います
func FromCode(code ErrorCode, message string) *AppError {
	switch code {
	case CodeValidationError:
		return NewValidationError(message, nil)
	case CodeQuotaExceeded:
		return NewQuotaExceededError(message)
	case CodeNotFound:
		return &AppError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
	case CodeForbidden:
		return NewForbiddenError(message)
	case CodeConflict:
		return NewConflictError(message)
	case CodeUnauthorized:
		return NewUnauthorizedError(message)
	case CodeStorageUnavailable:
		return NewStorageUnavailableError(message, nil)
	case CodeProcessingRejected:
		return NewProcessingRejectedError(message)
	case CodeProcessingUnavailable:
		return NewProcessingUnavailableError(message, nil)
	default:
		return &AppError{Code: CodeInternalError, Message: message, HTTPStatus: http.StatusInternalServerError}
	}
}

// As はエラーチェーンからAppErrorを取り出します
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf はエラーのコードを返します（AppErrorでなければINTERNAL_ERROR）
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// IsNotFound はリソース不在エラーかどうかを判定します
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsUnauthorized は認証エラーかどうかを判定します
func IsUnauthorized(err error) bool {
	return CodeOf(err) == CodeUnauthorized
}

// IsForbidden は権限エラーかどうかを判定します
func IsForbidden(err error) bool {
	return CodeOf(err) == CodeForbidden
}

// IsConflict は競合エラーかどうかを判定します
func IsConflict(err error) bool {
	return CodeOf(err) == CodeConflict
}
