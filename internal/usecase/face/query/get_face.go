package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// GetFaceInput は顔画像取得の入力を定義します
type GetFaceInput struct {
	UserID uuid.UUID
}

// GetFaceOutput は顔画像取得の出力を定義します
type GetFaceOutput struct {
	Profile *entity.FaceProfile
}

// GetFaceQuery は現在の顔画像プロファイルを取得するクエリです
type GetFaceQuery struct {
	profileRepo repository.FaceProfileRepository
}

// NewGetFaceQuery は新しいGetFaceQueryを作成します
func NewGetFaceQuery(profileRepo repository.FaceProfileRepository) *GetFaceQuery {
	return &GetFaceQuery{profileRepo: profileRepo}
}

// Execute は顔画像プロファイルを取得します（未保存なら既定値）
func (q *GetFaceQuery) Execute(ctx context.Context, input GetFaceInput) (*GetFaceOutput, error) {
	profile, err := q.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return nil, err
		}
		profile = entity.NewFaceProfile(input.UserID, time.Now())
	}

	return &GetFaceOutput{Profile: profile}, nil
}
