package handler_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/interface/middleware"
	"github.com/Hiro-mackay/avatar-face/internal/interface/validator"
)

// newTestEcho はバリデーターとエラーハンドラーを設定したEchoを返します
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	return e
}

// asUser は認証済みユーザーとしてリクエストを扱うミドルウェアです
func asUser(userID uuid.UUID) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetUserID(c, userID.String())
			return next(c)
		}
	}
}

// withAudit は監査ログサービスを注入するミドルウェアです
func withAudit(svc service.AuditService) echo.MiddlewareFunc {
	return middleware.NewAuditMiddleware(svc).Inject()
}
