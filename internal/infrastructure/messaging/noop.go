package messaging

import (
	"context"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// NoopPublisher はブローカー未設定時に使う配信しないPublisherです
type NoopPublisher struct{}

// NewNoopPublisher は新しいNoopPublisherを作成します
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish はイベントをデバッグログに出すだけです
func (NoopPublisher) Publish(ctx context.Context, event service.FaceEvent) error {
	logger.Debug(ctx, "event not published (no broker configured)", "event", string(event.Type), "user_id", event.UserID.String())
	return nil
}

var _ service.EventPublisher = NoopPublisher{}
