package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/jwt"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// JWTAuthMiddleware はJWT認証ミドルウェアを提供します
// 利用者向けAPIはアクセストークン、内部APIはサービストークンで認証します
type JWTAuthMiddleware struct {
	jwtService *jwt.JWTService
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
func NewJWTAuthMiddleware(jwtService *jwt.JWTService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{jwtService: jwtService}
}

// Authenticate はアクセストークンを検証するミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := m.jwtService.ValidateAccessToken(token)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			userID := claims.UserID.String()
			SetUserID(c, userID)

			// リクエストコンテキストにも設定（ログ出力で使用）
			ctx := logger.ContextWithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// ServiceAuth はサービストークンを検証するミドルウェアを返します
func (m *JWTAuthMiddleware) ServiceAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := m.jwtService.ValidateServiceToken(token)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid or expired service token")
			}

			c.Set(ContextKeyService, claims.Service)
			return next(c)
		}
	}
}

// bearerToken はAuthorizationヘッダーからBearerトークンを取り出します
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", apperror.NewUnauthorizedError("authorization header required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperror.NewUnauthorizedError("invalid authorization header format")
	}
	return parts[1], nil
}
