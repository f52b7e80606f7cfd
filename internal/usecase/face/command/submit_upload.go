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
	"github.com/Hiro-mackay/avatar-face/internal/usecase/face/query"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// SubmitUploadInput は顔画像アップロードの入力を定義します
type SubmitUploadInput struct {
	UserID   uuid.UUID
	FileName string
	MimeType string
	FileSize int64
	Data     []byte
	FaceMeta *entity.FaceTransform
}

// SubmitUploadOutput は顔画像アップロードの出力を定義します
type SubmitUploadOutput struct {
	UploadID    uuid.UUID
	FaceURL     string
	FaceVersion int
	State       entity.FaceState
	Meta        entity.FaceMeta
}

// SubmitUploadCommand は顔画像アップロードを受け付け、処理関数まで届けるコマンドです
type SubmitUploadCommand struct {
	checkQuota       *query.CheckQuotaQuery
	profileRepo      repository.FaceProfileRepository
	uploadLogRepo    repository.UploadLogRepository
	assetStore       service.AssetStore
	processingClient service.ProcessingClient
}

// NewSubmitUploadCommand は新しいSubmitUploadCommandを作成します
func NewSubmitUploadCommand(
	checkQuota *query.CheckQuotaQuery,
	profileRepo repository.FaceProfileRepository,
	uploadLogRepo repository.UploadLogRepository,
	assetStore service.AssetStore,
	processingClient service.ProcessingClient,
) *SubmitUploadCommand {
	return &SubmitUploadCommand{
		checkQuota:       checkQuota,
		profileRepo:      profileRepo,
		uploadLogRepo:    uploadLogRepo,
		assetStore:       assetStore,
		processingClient: processingClient,
	}
}

// Execute は顔画像アップロードを実行します
// 途中で失敗しても、完了済みの手順は巻き戻しません
func (c *SubmitUploadCommand) Execute(ctx context.Context, input SubmitUploadInput) (*SubmitUploadOutput, error) {
	// 1. アップロード枠の確認
	quota, err := c.checkQuota.Execute(ctx, query.CheckQuotaInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}
	if !quota.Allowed {
		return nil, apperror.NewQuotaExceededError(entity.ReasonDailyLimitReached)
	}

	// 2. サイズ・MIMEタイプの検証（ログもオブジェクトも作らない）
	if err := service.ValidateUpload(input.FileSize, input.MimeType); err != nil {
		return nil, admissionToAppError(err)
	}
	mimeType, err := valueobject.NewMimeType(input.MimeType)
	if err != nil {
		return nil, apperror.NewValidationError(service.ReasonInvalidFileType, nil)
	}

	// 3. アップロードIDと保存先の決定
	uploadID := uuid.New()
	ext := valueobject.RawUploadExt(input.FileName, mimeType)
	rawPath := valueobject.RawUploadPath(input.UserID, uploadID, ext)

	// 4. 未処理データの保存（上書きしない）
	if err := c.assetStore.PutNew(ctx, rawPath, input.Data, mimeType.ContentType()); err != nil {
		return nil, apperror.NewStorageUnavailableError("failed to store raw upload", err)
	}

	// 5. アップロードログを pending で作成
	now := time.Now()
	uploadLog := entity.NewUploadLog(uploadID, input.UserID, rawPath, input.FileSize, mimeType.Value(), now)
	if err := c.uploadLogRepo.Create(ctx, uploadLog); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	// 6. プロファイルを用意し、枠を条件付きで確保
	if err := c.profileRepo.EnsureExists(ctx, input.UserID, now); err != nil {
		return nil, err
	}
	claimed, err := c.profileRepo.ClaimUploadSlot(ctx, input.UserID, entity.DailyUploadLimit, now)
	if err != nil {
		return nil, err
	}
	if !claimed {
		c.rejectLostClaim(ctx, uploadLog)
		return nil, apperror.NewQuotaExceededError(entity.ReasonDailyLimitReached)
	}

	// 7. 処理関数の呼び出し
	result, err := c.processingClient.Process(ctx, service.ProcessRequest{
		UserID:   input.UserID,
		RawPath:  rawPath,
		UploadID: uploadID,
		FaceMeta: input.FaceMeta,
	})
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, apperror.NewProcessingUnavailableError("processing function unavailable", err)
	}

	logger.Info(ctx, "face upload accepted",
		"upload_id", uploadID.String(),
		"face_version", result.FaceVersion,
	)

	return &SubmitUploadOutput{
		UploadID:    uploadID,
		FaceURL:     result.FaceURL,
		FaceVersion: result.FaceVersion,
		State:       result.State,
		Meta:        result.Meta,
	}, nil
}

// rejectLostClaim は枠の確保に負けたアップロードのログを却下で確定させます
func (c *SubmitUploadCommand) rejectLostClaim(ctx context.Context, uploadLog *entity.UploadLog) {
	if err := uploadLog.Reject(entity.ReasonDailyLimitReached, time.Now()); err != nil {
		return
	}
	if err := c.uploadLogRepo.Finalize(ctx, uploadLog); err != nil {
		logger.Warn(ctx, "failed to finalize upload log after lost quota claim",
			"upload_id", uploadLog.UploadID.String(),
			"error", err,
		)
	}
}

// admissionToAppError はアドミッション違反をVALIDATION_ERRORに変換します
func admissionToAppError(err error) error {
	var admissionErr *service.AdmissionError
	if errors.As(err, &admissionErr) {
		return apperror.NewValidationError(admissionErr.Reason, []apperror.FieldError{
			{Field: admissionErr.Field, Message: admissionErr.Reason},
		})
	}
	return apperror.NewValidationError(err.Error(), nil)
}
