package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// Logger はリクエストロギングミドルウェアを返します
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// ステータスを確定させてから記録する
				c.Error(err)
			}

			level := slog.LevelInfo
			if c.Response().Status >= 500 {
				level = slog.LevelError
			}

			slog.Log(c.Request().Context(), level, "request",
				"request_id", GetRequestID(c),
				"user_id", GetUserID(c),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
				"bytes_in", c.Request().ContentLength,
				"bytes_out", c.Response().Size,
			)

			return nil
		}
	}
}
