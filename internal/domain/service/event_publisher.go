package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FaceEventType はドメインイベントの種別です
type FaceEventType string

const (
	FaceEventApproved FaceEventType = "face.approved"
	FaceEventRejected FaceEventType = "face.rejected"
	FaceEventFlagged  FaceEventType = "face.flagged"
	FaceEventRemoved  FaceEventType = "face.removed"
)

// FaceEvent はゲーム・描画側へ通知する顔画像イベントです
type FaceEvent struct {
	Type        FaceEventType `json:"type"`
	UserID      uuid.UUID     `json:"user_id"`
	UploadID    *uuid.UUID    `json:"upload_id,omitempty"`
	FaceVersion int           `json:"face_version"`
	FaceURL     string        `json:"face_url,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// EventPublisher はイベント配信を定義します
// 配信はベストエフォートで、呼び出し側は失敗をログに残すだけです
type EventPublisher interface {
	Publish(ctx context.Context, event FaceEvent) error
}
