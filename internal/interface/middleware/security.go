package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders はセキュリティヘッダーを設定するミドルウェアを返します
// APIはJSONしか返さないため、CSPはすべて拒否にしています
func SecurityHeaders(enableHSTS bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")

			// HTTPS強制（本番環境）
			if enableHSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			return next(c)
		}
	}
}
