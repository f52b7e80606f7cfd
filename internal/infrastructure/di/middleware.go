package di

import (
	"github.com/Hiro-mackay/avatar-face/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	JWTAuth   *middleware.JWTAuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	Audit     *middleware.AuditMiddleware
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	return &Middlewares{
		JWTAuth:   middleware.NewJWTAuthMiddleware(c.JWTService),
		RateLimit: middleware.NewRateLimitMiddleware(c.RateLimiter),
		Audit:     middleware.NewAuditMiddleware(c.AuditService),
	}
}
