package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/cache"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/di"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupFaceRoutes()
	r.setupInternalRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupFaceRoutes は利用者向けの顔画像ルートを設定します
func (r *Router) setupFaceRoutes() {
	face := r.echo.Group("/api/v1/me/face",
		r.middlewares.JWTAuth.Authenticate(),
		r.middlewares.Audit.Inject(),
		r.middlewares.RateLimit.ByUser(cache.RateLimitAPIDefault),
	)

	face.POST("", r.handlers.Face.UploadFace,
		r.middlewares.RateLimit.ByUser(cache.RateLimitFaceUpload))
	face.GET("", r.handlers.Face.GetFace)
	face.DELETE("", r.handlers.Face.RemoveFace)
	face.GET("/quota", r.handlers.Face.GetQuota)
	face.GET("/uploads", r.handlers.Face.ListUploadLogs)
}

// setupInternalRoutes はサービス間の内部ルートを設定します
func (r *Router) setupInternalRoutes() {
	internal := r.echo.Group("/internal/v1/face",
		r.middlewares.JWTAuth.ServiceAuth(),
		r.middlewares.Audit.Inject(),
	)

	internal.POST("/process", r.handlers.Processing.Process)
	internal.POST("/:userId/moderate", r.handlers.Moderation.Moderate)
}
