package di

import (
	"github.com/Hiro-mackay/avatar-face/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health     *handler.HealthHandler
	Face       *handler.FaceHandler
	Processing *handler.ProcessingHandler
	Moderation *handler.ModerationHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Health Handler
	healthHandler := handler.NewHealthHandler()
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}
	if c.MinIOClient != nil {
		healthHandler.RegisterChecker("minio", c.MinIOClient)
	}

	return &Handlers{
		Health: healthHandler,
		Face: handler.NewFaceHandler(
			c.Face.SubmitUpload,
			c.Face.RemoveFace,
			c.Face.GetFace,
			c.Face.CheckQuota,
			c.Face.ListUploadLogs,
		),
		Processing: handler.NewProcessingHandler(c.Face.ProcessUpload),
		Moderation: handler.NewModerationHandler(c.Face.ModerateFace),
	}
}
