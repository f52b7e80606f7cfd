package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// CheckQuotaInput はアップロード枠確認の入力を定義します
type CheckQuotaInput struct {
	UserID uuid.UUID
}

// CheckQuotaOutput はアップロード枠確認の出力を定義します
type CheckQuotaOutput struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// CheckQuotaQuery は24時間ウィンドウのアップロード枠を確認するクエリです
// ウィンドウが切れていればその場でリセットを保存します
type CheckQuotaQuery struct {
	profileRepo repository.FaceProfileRepository
}

// NewCheckQuotaQuery は新しいCheckQuotaQueryを作成します
func NewCheckQuotaQuery(profileRepo repository.FaceProfileRepository) *CheckQuotaQuery {
	return &CheckQuotaQuery{profileRepo: profileRepo}
}

// Execute はアップロード枠を確認します
func (q *CheckQuotaQuery) Execute(ctx context.Context, input CheckQuotaInput) (*CheckQuotaOutput, error) {
	now := time.Now()

	profile, err := q.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return nil, err
		}
		// 未保存のプロファイルは既定値として扱い、書き込みはしない
		profile = entity.NewFaceProfile(input.UserID, now)
	} else if profile.WindowExpired(now) {
		reset, err := q.profileRepo.ResetUploadWindow(ctx, input.UserID, now)
		if err != nil {
			return nil, err
		}
		if reset {
			profile.ResetWindow(now)
		} else {
			// 並行したリクエストが先にリセットし、枠を使っている場合がある
			profile, err = q.profileRepo.FindByUserID(ctx, input.UserID)
			if err != nil {
				return nil, err
			}
		}
	}

	return &CheckQuotaOutput{
		Allowed:   profile.CanUpload(),
		Remaining: profile.RemainingUploads(),
		Limit:     entity.DailyUploadLimit,
		ResetAt:   profile.WindowResetAt(),
	}, nil
}
