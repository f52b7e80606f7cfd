package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/database"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/database/sqlcgen"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// FaceProfileRepository は顔画像プロファイルリポジトリの実装です
type FaceProfileRepository struct {
	*database.BaseRepository
}

// NewFaceProfileRepository は新しいFaceProfileRepositoryを作成します
func NewFaceProfileRepository(txManager *database.TxManager) *FaceProfileRepository {
	return &FaceProfileRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// FindByUserID はユーザーIDでプロファイルを検索します
func (r *FaceProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.FaceProfile, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	row, err := queries.GetFaceProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("face profile")
		}
		return nil, r.HandleError(err, "face profile")
	}

	return r.toEntity(row)
}

// EnsureExists は既定値のプロファイルを作成します
func (r *FaceProfileRepository) EnsureExists(ctx context.Context, userID uuid.UUID, now time.Time) error {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	err := queries.EnsureFaceProfile(ctx, sqlcgen.EnsureFaceProfileParams{
		UserID: userID,
		Now:    now,
	})
	return r.HandleError(err, "face profile")
}

// ResetUploadWindow はウィンドウが切れているときだけアップロードカウンタをリセットします
// 他のリクエストが先にリセットしていれば false を返します
func (r *FaceProfileRepository) ResetUploadWindow(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	affected, err := queries.ResetFaceUploadWindow(ctx, sqlcgen.ResetFaceUploadWindowParams{
		Now:         now,
		UserID:      userID,
		WindowStart: now.Add(-entity.UploadWindow),
	})
	if err != nil {
		return false, r.HandleError(err, "face profile")
	}
	return affected == 1, nil
}

// ClaimUploadSlot はカウンタが上限未満のときだけ1増やして pending にします
func (r *FaceProfileRepository) ClaimUploadSlot(ctx context.Context, userID uuid.UUID, limit int, now time.Time) (bool, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	affected, err := queries.ClaimFaceUploadSlot(ctx, sqlcgen.ClaimFaceUploadSlotParams{
		Now:         now,
		UserID:      userID,
		UploadLimit: int32(limit),
	})
	if err != nil {
		return false, r.HandleError(err, "face profile")
	}
	return affected == 1, nil
}

// CommitApproved は face_version と状態を条件に処理結果を反映します
// 処理中に削除・モデレーションされた場合も反映しません
func (r *FaceProfileRepository) CommitApproved(ctx context.Context, profile *entity.FaceProfile, expectedVersion int) error {
	meta, err := marshalFaceMeta(profile.FaceMeta)
	if err != nil {
		return apperror.NewInternalError(err)
	}

	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	affected, err := queries.CommitApprovedFace(ctx, sqlcgen.CommitApprovedFaceParams{
		FacePath:        profile.FacePath,
		FaceUrl:         profile.FaceURL,
		FaceVersion:     int32(profile.FaceVersion),
		FaceState:       profile.FaceState.String(),
		FaceMeta:        meta,
		UpdatedAt:       profile.UpdatedAt,
		UserID:          profile.UserID,
		ExpectedVersion: int32(expectedVersion),
	})
	if err != nil {
		return r.HandleError(err, "face profile")
	}
	if affected == 0 {
		return apperror.NewConflictErrorFrom(entity.ErrFaceProfileChanged)
	}
	return nil
}

// SaveState は状態を条件に状態・アセット情報を保存します
func (r *FaceProfileRepository) SaveState(ctx context.Context, profile *entity.FaceProfile, expectedState entity.FaceState) error {
	meta, err := marshalFaceMeta(profile.FaceMeta)
	if err != nil {
		return apperror.NewInternalError(err)
	}

	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	affected, err := queries.UpdateFaceState(ctx, sqlcgen.UpdateFaceStateParams{
		FaceState:     profile.FaceState.String(),
		FacePath:      profile.FacePath,
		FaceUrl:       profile.FaceURL,
		FaceMeta:      meta,
		UpdatedAt:     profile.UpdatedAt,
		UserID:        profile.UserID,
		ExpectedState: expectedState.String(),
	})
	if err != nil {
		return r.HandleError(err, "face profile")
	}
	if affected == 0 {
		return apperror.NewConflictError("face state changed concurrently")
	}
	return nil
}

// ListStalePending は長時間 pending のままのプロファイルを取得します
func (r *FaceProfileRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.FaceProfile, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	rows, err := queries.ListStalePendingFaceProfiles(ctx, sqlcgen.ListStalePendingFaceProfilesParams{
		Before:   before,
		LimitVal: int32(limit),
	})
	if err != nil {
		return nil, r.HandleError(err, "face profile")
	}

	profiles := make([]*entity.FaceProfile, 0, len(rows))
	for _, row := range rows {
		profile, err := r.toEntity(row)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// toEntity はsqlcgen.FaceProfileをentity.FaceProfileに変換します
func (r *FaceProfileRepository) toEntity(row sqlcgen.FaceProfile) (*entity.FaceProfile, error) {
	var meta *entity.FaceMeta
	if len(row.FaceMeta) > 0 {
		meta = &entity.FaceMeta{}
		if err := json.Unmarshal(row.FaceMeta, meta); err != nil {
			return nil, apperror.NewInternalError(err)
		}
	}

	return entity.ReconstructFaceProfile(
		row.UserID,
		row.FacePath,
		row.FaceUrl,
		int(row.FaceVersion),
		entity.FaceState(row.FaceState),
		meta,
		int(row.UploadCountToday),
		row.LastUploadReset,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func marshalFaceMeta(meta *entity.FaceMeta) ([]byte, error) {
	if meta == nil {
		return nil, nil
	}
	return json.Marshal(meta)
}

// インターフェースの実装を保証
var _ repository.FaceProfileRepository = (*FaceProfileRepository)(nil)
