package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/cache"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// RateLimitMiddleware はリクエスト頻度の制限を提供します
// 1日のアップロード枠とは別の、短時間の連打対策です
type RateLimitMiddleware struct {
	limiter *cache.RateLimiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
func NewRateLimitMiddleware(limiter *cache.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// ByUser はユーザーIDでレート制限するミドルウェアを返します
// ユーザーIDがない場合はIPで判定します
func (m *RateLimitMiddleware) ByUser(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string {
		if userID := GetUserID(c); userID != "" {
			return userID
		}
		return c.RealIP()
	})
}

func (m *RateLimitMiddleware) limit(config cache.RateLimitConfig, identify func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			result, err := m.limiter.Allow(ctx, identify(c), config)
			if err != nil {
				// Redis障害時はリクエストを通す
				logger.Warn(ctx, "rate limit check failed", "error", err)
				return next(c)
			}

			setRateLimitHeaders(c, config, result)

			if !result.Allowed {
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}
			return next(c)
		}
	}
}

// setRateLimitHeaders はレート制限ヘッダーを設定します
func setRateLimitHeaders(c echo.Context, config cache.RateLimitConfig, result *cache.RateLimitResult) {
	h := c.Response().Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", result.ResetAt.UTC().Format(time.RFC3339))
	if !result.Allowed {
		retryAfter := int(time.Until(result.RetryAt).Seconds()) + 1
		h.Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
	}
}
