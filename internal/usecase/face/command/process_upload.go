package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/domain/valueobject"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// ProcessUploadInput は処理関数の入力を定義します
type ProcessUploadInput struct {
	UserID   uuid.UUID
	RawPath  string
	UploadID uuid.UUID
	FaceMeta *entity.FaceTransform
}

// ProcessUploadOutput は処理関数の出力を定義します
type ProcessUploadOutput struct {
	FaceURL     string
	FaceVersion int
	State       entity.FaceState
	Meta        entity.FaceMeta
}

// ProcessUploadCommand は未処理アップロードを検証し、配信用アセットとして確定させるコマンドです
// 同じ upload_id での再呼び出しは記録済みの結果を返します
type ProcessUploadCommand struct {
	profileRepo   repository.FaceProfileRepository
	uploadLogRepo repository.UploadLogRepository
	assetStore    service.AssetStore
	lock          service.ProcessingLock
	publisher     service.EventPublisher
	txManager     repository.TransactionManager
}

// NewProcessUploadCommand は新しいProcessUploadCommandを作成します
func NewProcessUploadCommand(
	profileRepo repository.FaceProfileRepository,
	uploadLogRepo repository.UploadLogRepository,
	assetStore service.AssetStore,
	lock service.ProcessingLock,
	publisher service.EventPublisher,
	txManager repository.TransactionManager,
) *ProcessUploadCommand {
	return &ProcessUploadCommand{
		profileRepo:   profileRepo,
		uploadLogRepo: uploadLogRepo,
		assetStore:    assetStore,
		lock:          lock,
		publisher:     publisher,
		txManager:     txManager,
	}
}

// Execute は処理関数を実行します
func (c *ProcessUploadCommand) Execute(ctx context.Context, input ProcessUploadInput) (*ProcessUploadOutput, error) {
	// 0. アップロードログの確認と冪等性
	uploadLog, err := c.uploadLogRepo.FindByUploadID(ctx, input.UploadID)
	if err != nil {
		return nil, err
	}
	if uploadLog.UserID != input.UserID {
		return nil, apperror.NewForbiddenError("upload does not belong to this user")
	}
	if uploadLog.RawPath != input.RawPath {
		return nil, apperror.NewInvalidRequestError("raw_path does not match upload")
	}

	if out, done, err := c.settledResult(ctx, uploadLog, input); done {
		return out, err
	}

	// 1. 未処理データの取得
	// 失敗時は同じ upload_id の再試行と同じ PROCESSING_REJECTED を返します
	raw, err := c.assetStore.Get(ctx, input.RawPath)
	if err != nil {
		logger.Warn(ctx, "failed to download raw upload",
			"upload_id", input.UploadID.String(),
			"error", err,
		)
		c.rejectUpload(ctx, uploadLog, entity.ReasonDownloadFailed)
		return nil, apperror.NewProcessingRejectedError(entity.ReasonDownloadFailed)
	}

	// 2. サイズ・MIMEタイプ・中身の再検証
	contentType, err := service.ValidateContent(raw.Data, uploadLog.MimeType)
	if err != nil {
		reason := err.Error()
		c.rejectUpload(ctx, uploadLog, reason)
		return nil, apperror.NewProcessingRejectedError(reason)
	}

	// 3. ユーザー単位のロックを取得し、現在のプロファイルを読む
	release, err := c.lock.Acquire(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, service.ErrLockBusy) {
			return nil, apperror.NewConflictError("another upload is being processed")
		}
		return nil, apperror.NewInternalError(err)
	}
	defer func() {
		if err := release(ctx); err != nil {
			logger.Warn(ctx, "failed to release processing lock", "error", err)
		}
	}()

	now := time.Now()
	if err := c.profileRepo.EnsureExists(ctx, input.UserID, now); err != nil {
		return nil, err
	}
	profile, err := c.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.FaceState.CanTransitionTo(entity.FaceStateApproved) {
		c.rejectUpload(ctx, uploadLog, entity.ReasonProfileNotPending)
		return nil, apperror.NewProcessingRejectedError(entity.ReasonProfileNotPending)
	}

	expectedVersion := profile.FaceVersion
	processedPath := valueobject.ProcessedAssetPath(input.UserID, profile.NextVersion(), contentType.CanonicalExt())

	// 4. 変形パラメータの正規化
	meta := entity.NormalizeFaceMeta(input.FaceMeta)

	// 5. 処理済みデータの保存（上書き可）
	if err := c.assetStore.Put(ctx, processedPath, raw.Data, contentType.ContentType()); err != nil {
		logger.Warn(ctx, "failed to store processed asset",
			"upload_id", input.UploadID.String(),
			"error", err,
		)
		c.rejectUpload(ctx, uploadLog, entity.ReasonStoreFailed)
		return nil, apperror.NewProcessingRejectedError(entity.ReasonStoreFailed)
	}

	// 6. 公開URL
	faceURL := c.assetStore.PublicURL(processedPath)

	// 7-8. プロファイルとログを同じトランザクションで確定
	approved := *profile
	if err := approved.Approve(processedPath, faceURL, meta, now); err != nil {
		return nil, apperror.NewInternalError(err)
	}
	accepted := *uploadLog
	if err := accepted.Accept(processedPath, int64(len(raw.Data)), contentType.ContentType(), now); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.profileRepo.CommitApproved(ctx, &approved, expectedVersion); err != nil {
			return err
		}
		return c.uploadLogRepo.Finalize(ctx, &accepted)
	})
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrFaceProfileChanged):
		c.rejectUpload(ctx, uploadLog, entity.ReasonProfileChanged)
		return nil, apperror.NewConflictError(entity.ReasonProfileChanged)
	case errors.Is(err, entity.ErrUploadLogFinalized):
		// 整合処理や並行した呼び出しが先に確定させた。記録済みの結果に従う
		return c.concurrentResult(ctx, input)
	default:
		// ロック待ちのタイムアウトなどはログを pending のまま残し、再試行に任せます
		return nil, err
	}

	// 9. イベント配信（ベストエフォート）
	c.publish(ctx, service.FaceEvent{
		Type:        service.FaceEventApproved,
		UserID:      input.UserID,
		UploadID:    &uploadLog.UploadID,
		FaceVersion: approved.FaceVersion,
		FaceURL:     faceURL,
		OccurredAt:  now,
	})

	logger.Info(ctx, "face asset approved",
		"upload_id", input.UploadID.String(),
		"face_version", approved.FaceVersion,
	)

	return &ProcessUploadOutput{
		FaceURL:     faceURL,
		FaceVersion: approved.FaceVersion,
		State:       approved.FaceState,
		Meta:        meta,
	}, nil
}

// settledResult はログが確定済みなら記録済みの結果を返します
func (c *ProcessUploadCommand) settledResult(ctx context.Context, uploadLog *entity.UploadLog, input ProcessUploadInput) (*ProcessUploadOutput, bool, error) {
	switch uploadLog.Outcome {
	case entity.UploadOutcomeAccepted:
		out, err := c.recordedResult(ctx, uploadLog, input)
		return out, true, err
	case entity.UploadOutcomeRejected, entity.UploadOutcomeFlagged:
		return nil, true, apperror.NewProcessingRejectedError(uploadLog.ReasonText())
	}
	return nil, false, nil
}

// concurrentResult はコミット中に他で確定されたログを読み直して結果を返します
func (c *ProcessUploadCommand) concurrentResult(ctx context.Context, input ProcessUploadInput) (*ProcessUploadOutput, error) {
	uploadLog, err := c.uploadLogRepo.FindByUploadID(ctx, input.UploadID)
	if err != nil {
		return nil, err
	}
	if out, done, err := c.settledResult(ctx, uploadLog, input); done {
		return out, err
	}
	return nil, apperror.NewConflictError("upload log changed during processing")
}

// recordedResult は確定済みのアップロードの結果を書き込みなしで返します
func (c *ProcessUploadCommand) recordedResult(ctx context.Context, uploadLog *entity.UploadLog, input ProcessUploadInput) (*ProcessUploadOutput, error) {
	if uploadLog.ProcessedPath == nil {
		return nil, apperror.NewInternalError(errors.New("accepted upload has no processed path"))
	}
	_, version, err := valueobject.ParseProcessedAssetPath(*uploadLog.ProcessedPath)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	meta := entity.NormalizeFaceMeta(input.FaceMeta)
	profile, err := c.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if profile != nil && profile.FaceVersion == version && profile.FaceMeta != nil {
		meta = *profile.FaceMeta
	}

	return &ProcessUploadOutput{
		FaceURL:     c.assetStore.PublicURL(*uploadLog.ProcessedPath),
		FaceVersion: version,
		State:       entity.FaceStateApproved,
		Meta:        meta,
	}, nil
}

// rejectUpload はログを却下で確定させ、却下イベントを配信します
// 確定に失敗しても呼び出し元のエラーを優先します
func (c *ProcessUploadCommand) rejectUpload(ctx context.Context, uploadLog *entity.UploadLog, reason string) {
	now := time.Now()
	rejected := *uploadLog
	if err := rejected.Reject(reason, now); err != nil {
		return
	}
	if err := c.uploadLogRepo.Finalize(ctx, &rejected); err != nil {
		logger.Warn(ctx, "failed to finalize rejected upload log",
			"upload_id", uploadLog.UploadID.String(),
			"error", err,
		)
		return
	}

	c.publish(ctx, service.FaceEvent{
		Type:       service.FaceEventRejected,
		UserID:     uploadLog.UserID,
		UploadID:   &uploadLog.UploadID,
		Reason:     reason,
		OccurredAt: now,
	})
}

func (c *ProcessUploadCommand) publish(ctx context.Context, event service.FaceEvent) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish face event", "type", string(event.Type), "error", err)
	}
}
