package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// ModerateFaceInput はモデレーションの入力を定義します
type ModerateFaceInput struct {
	UserID uuid.UUID
	State  string
	Reason string
}

// ModerateFaceOutput はモデレーションの出力を定義します
type ModerateFaceOutput struct {
	Profile       *entity.FaceProfile
	PreviousState entity.FaceState
}

// ModerateFaceCommand はオペレーターの判断で顔画像を rejected/flagged にするコマンドです
// パイプライン自身が flagged を設定することはありません
type ModerateFaceCommand struct {
	profileRepo repository.FaceProfileRepository
	publisher   service.EventPublisher
}

// NewModerateFaceCommand は新しいModerateFaceCommandを作成します
func NewModerateFaceCommand(
	profileRepo repository.FaceProfileRepository,
	publisher service.EventPublisher,
) *ModerateFaceCommand {
	return &ModerateFaceCommand{
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// Execute はモデレーションを実行します
func (c *ModerateFaceCommand) Execute(ctx context.Context, input ModerateFaceInput) (*ModerateFaceOutput, error) {
	state, err := entity.ParseFaceState(input.State)
	if err != nil || (state != entity.FaceStateRejected && state != entity.FaceStateFlagged) {
		return nil, apperror.NewValidationError("state must be rejected or flagged", []apperror.FieldError{
			{Field: "state", Message: "must be rejected or flagged"},
		})
	}

	profile, err := c.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	previous := profile.FaceState
	if err := profile.Moderate(state, now); err != nil {
		if errors.Is(err, entity.ErrInvalidFaceTransition) {
			return nil, apperror.NewConflictError(err.Error())
		}
		return nil, apperror.NewInternalError(err)
	}
	if err := c.profileRepo.SaveState(ctx, profile, previous); err != nil {
		return nil, err
	}

	eventType := service.FaceEventRejected
	if state == entity.FaceStateFlagged {
		eventType = service.FaceEventFlagged
	}
	if err := c.publisher.Publish(ctx, service.FaceEvent{
		Type:        eventType,
		UserID:      input.UserID,
		FaceVersion: profile.FaceVersion,
		Reason:      input.Reason,
		OccurredAt:  now,
	}); err != nil {
		logger.Warn(ctx, "failed to publish face event", "type", string(eventType), "error", err)
	}

	return &ModerateFaceOutput{Profile: profile, PreviousState: previous}, nil
}
