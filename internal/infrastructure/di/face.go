package di

import (
	"context"
	"time"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/processing"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	faceqry "github.com/Hiro-mackay/avatar-face/internal/usecase/face/query"
	"github.com/Hiro-mackay/avatar-face/pkg/config"
)

// FaceUseCases は顔画像関連のUseCaseを保持します
type FaceUseCases struct {
	// Commands
	SubmitUpload     *facecmd.SubmitUploadCommand
	ProcessUpload    *facecmd.ProcessUploadCommand
	RemoveFace       *facecmd.RemoveFaceCommand
	ModerateFace     *facecmd.ModerateFaceCommand
	ReconcilePending *facecmd.ReconcilePendingCommand

	// Queries
	GetFace        *faceqry.GetFaceQuery
	CheckQuota     *faceqry.CheckQuotaQuery
	ListUploadLogs *faceqry.ListUploadLogsQuery
}

// NewFaceUseCases は新しいFaceUseCasesを作成します
// 処理関数は設定に応じて同一プロセス内かHTTP経由で呼び出します
func NewFaceUseCases(c *Container, cfg config.ProcessingConfig) *FaceUseCases {
	processUpload := facecmd.NewProcessUploadCommand(
		c.FaceProfileRepo,
		c.UploadLogRepo,
		c.AssetStore,
		c.ProcessingLock,
		c.EventPublisher,
		c.TxManager,
	)

	var processingClient service.ProcessingClient
	if cfg.Mode == config.ProcessingModeRemote {
		processingClient = processing.NewHTTPClient(cfg.URL, c.JWTService, cfg.Timeout)
	} else {
		processingClient = facecmd.NewLocalProcessingClient(processUpload)
	}

	checkQuota := faceqry.NewCheckQuotaQuery(c.FaceProfileRepo)

	return &FaceUseCases{
		SubmitUpload: facecmd.NewSubmitUploadCommand(
			checkQuota,
			c.FaceProfileRepo,
			c.UploadLogRepo,
			c.AssetStore,
			processingClient,
		),
		ProcessUpload:    processUpload,
		RemoveFace:       facecmd.NewRemoveFaceCommand(c.FaceProfileRepo, c.EventPublisher),
		ModerateFace:     facecmd.NewModerateFaceCommand(c.FaceProfileRepo, c.EventPublisher),
		ReconcilePending: facecmd.NewReconcilePendingCommand(c.FaceProfileRepo, c.UploadLogRepo, c.EventPublisher, c.AuditService),

		GetFace:        faceqry.NewGetFaceQuery(c.FaceProfileRepo),
		CheckQuota:     checkQuota,
		ListUploadLogs: faceqry.NewListUploadLogsQuery(c.UploadLogRepo),
	}
}

// Reconcile は整合処理を1回実行します（worker.ReconcileFunc として使用）
func (u *FaceUseCases) Reconcile(ctx context.Context, pendingTimeout time.Duration) (int, int, error) {
	output, err := u.ReconcilePending.Execute(ctx, facecmd.ReconcilePendingInput{PendingTimeout: pendingTimeout})
	if err != nil {
		return 0, 0, err
	}
	return output.ExpiredUploads, output.RejectedProfiles, nil
}
