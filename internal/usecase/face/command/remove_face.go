package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// RemoveFaceInput は顔画像削除の入力を定義します
type RemoveFaceInput struct {
	UserID uuid.UUID
}

// RemoveFaceOutput は顔画像削除の出力を定義します
type RemoveFaceOutput struct {
	Profile *entity.FaceProfile
	// Removed はこの呼び出しで状態が変わったかどうか
	Removed bool
}

// RemoveFaceCommand は顔画像を外して既定の頭部に戻すコマンドです
// ストレージ上のオブジェクトは残し、バージョンも戻しません
type RemoveFaceCommand struct {
	profileRepo repository.FaceProfileRepository
	publisher   service.EventPublisher
}

// NewRemoveFaceCommand は新しいRemoveFaceCommandを作成します
func NewRemoveFaceCommand(
	profileRepo repository.FaceProfileRepository,
	publisher service.EventPublisher,
) *RemoveFaceCommand {
	return &RemoveFaceCommand{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// Execute は顔画像削除を実行します
func (c *RemoveFaceCommand) Execute(ctx context.Context, input RemoveFaceInput) (*RemoveFaceOutput, error) {
	now := time.Now()

	profile, err := c.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return &RemoveFaceOutput{Profile: entity.NewFaceProfile(input.UserID, now)}, nil
		}
		return nil, err
	}
	if profile.FaceState == entity.FaceStateNone {
		return &RemoveFaceOutput{Profile: profile}, nil
	}

	expected := profile.FaceState
	if err := profile.Remove(now); err != nil {
		return nil, apperror.NewConflictError(err.Error())
	}
	if err := c.profileRepo.SaveState(ctx, profile, expected); err != nil {
		return nil, err
	}

	if err := c.publisher.Publish(ctx, service.FaceEvent{
		Type:        service.FaceEventRemoved,
		UserID:      input.UserID,
		FaceVersion: profile.FaceVersion,
		OccurredAt:  now,
	}); err != nil {
		logger.Warn(ctx, "failed to publish face event", "type", string(service.FaceEventRemoved), "error", err)
	}

	return &RemoveFaceOutput{Profile: profile, Removed: true}, nil
}
