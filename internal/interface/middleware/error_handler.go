package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()

	if appErr, ok := apperror.As(err); ok {
		if appErr.HTTPStatus >= 500 {
			logger.Error(ctx, "request failed",
				"code", string(appErr.Code),
				"error", appErr.Error(),
			)
		}

		_ = c.JSON(appErr.HTTPStatus, ErrorResponse{
			Error: ErrorBody{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	// Echo HTTPErrorの場合（ルート不在・ボディサイズ超過など）
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, ErrorResponse{
			Error: ErrorBody{
				Code:    httpErrorCode(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			},
		})
		return
	}

	logger.Error(ctx, "unknown error", "error", err.Error())

	_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{
			Code:    string(apperror.CodeInternalError),
			Message: "internal server error",
		},
	})
}

// httpErrorCode はEchoのステータスをエラーコードに対応付けます
func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperror.CodeNotFound)
	case http.StatusUnauthorized:
		return string(apperror.CodeUnauthorized)
	case http.StatusForbidden:
		return string(apperror.CodeForbidden)
	case http.StatusTooManyRequests:
		return string(apperror.CodeRateLimitExceeded)
	case http.StatusRequestEntityTooLarge:
		return string(apperror.CodeValidationError)
	case http.StatusServiceUnavailable:
		return string(apperror.CodeServiceUnavailable)
	}
	if status >= 500 {
		return string(apperror.CodeInternalError)
	}
	return string(apperror.CodeInvalidRequest)
}
