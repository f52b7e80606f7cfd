package command

import (
	"context"
	"time"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// DefaultReconcileBatchSize は1回の整合処理で扱う最大件数
const DefaultReconcileBatchSize = 100

// ReconcilePendingInput は整合処理の入力を定義します
type ReconcilePendingInput struct {
	PendingTimeout time.Duration
	BatchSize      int
}

// ReconcilePendingOutput は整合処理の出力を定義します
type ReconcilePendingOutput struct {
	ExpiredUploads   int
	RejectedProfiles int
}

// ReconcilePendingCommand は処理が終わらなかったアップロードを片付けるコマンドです
// pending のまま期限を過ぎたログは却下し、pending のログが残っていない pending プロファイルは rejected にします
type ReconcilePendingCommand struct {
	profileRepo   repository.FaceProfileRepository
	uploadLogRepo repository.UploadLogRepository
	publisher     service.EventPublisher
	auditService  service.AuditService
}

// NewReconcilePendingCommand は新しいReconcilePendingCommandを作成します
func NewReconcilePendingCommand(
	profileRepo repository.FaceProfileRepository,
	uploadLogRepo repository.UploadLogRepository,
	publisher service.EventPublisher,
	auditService service.AuditService,
) *ReconcilePendingCommand {
	return &ReconcilePendingCommand{
		profileRepo:   profileRepo,
		uploadLogRepo: uploadLogRepo,
		publisher:     publisher,
		auditService:  auditService,
	}
}

// Execute は整合処理を実行します
func (c *ReconcilePendingCommand) Execute(ctx context.Context, input ReconcilePendingInput) (*ReconcilePendingOutput, error) {
	if input.PendingTimeout <= 0 {
		return nil, apperror.NewValidationError("pending timeout must be positive", nil)
	}
	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultReconcileBatchSize
	}

	now := time.Now()
	before := now.Add(-input.PendingTimeout)
	output := &ReconcilePendingOutput{}

	// 1. 期限切れの pending ログを却下
	logs, err := c.uploadLogRepo.ListStalePending(ctx, before, batchSize)
	if err != nil {
		return nil, err
	}
	for _, uploadLog := range logs {
		if err := uploadLog.Reject(entity.ReasonProcessingTimedOut, now); err != nil {
			continue
		}
		if err := c.uploadLogRepo.Finalize(ctx, uploadLog); err != nil {
			if apperror.IsConflict(err) {
				// 処理関数が先に確定させた
				continue
			}
			return nil, err
		}
		output.ExpiredUploads++

		userID, uploadID := uploadLog.UserID, uploadLog.UploadID
		c.auditService.Log(ctx, service.SystemAuditEntry(
			entity.AuditActionFaceReconcile, userID, entity.AuditResourceUploadLog, uploadID,
			map[string]interface{}{"reason": entity.ReasonProcessingTimedOut},
		))
		c.publish(ctx, service.FaceEvent{
			Type:       service.FaceEventRejected,
			UserID:     userID,
			UploadID:   &uploadID,
			Reason:     entity.ReasonProcessingTimedOut,
			OccurredAt: now,
		})
	}

	// 2. pending のログが残っていない pending プロファイルを rejected に
	profiles, err := c.profileRepo.ListStalePending(ctx, before, batchSize)
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		hasPending, err := c.uploadLogRepo.HasPendingByUserID(ctx, profile.UserID)
		if err != nil {
			return nil, err
		}
		if hasPending {
			continue
		}

		if err := profile.Reject(now); err != nil {
			continue
		}
		if err := c.profileRepo.SaveState(ctx, profile, entity.FaceStatePending); err != nil {
			if apperror.IsConflict(err) {
				continue
			}
			return nil, err
		}
		output.RejectedProfiles++

		userID := profile.UserID
		c.auditService.Log(ctx, service.SystemAuditEntry(
			entity.AuditActionFaceReconcile, userID, entity.AuditResourceFaceProfile, userID,
			map[string]interface{}{
				"from":         string(entity.FaceStatePending),
				"to":           string(entity.FaceStateRejected),
				"face_version": profile.FaceVersion,
			},
		))
	}

	if output.ExpiredUploads > 0 || output.RejectedProfiles > 0 {
		logger.Info(ctx, "reconciled stale pending uploads",
			"expired_uploads", output.ExpiredUploads,
			"rejected_profiles", output.RejectedProfiles,
		)
	}

	return output, nil
}

func (c *ReconcilePendingCommand) publish(ctx context.Context, event service.FaceEvent) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish face event", "type", string(event.Type), "error", err)
	}
}
