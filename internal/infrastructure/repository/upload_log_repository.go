package repository

import (
	"context"
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

// UploadLogRepository はアップロードログリポジトリの実装です
type UploadLogRepository struct {
	*database.BaseRepository
}

// NewUploadLogRepository は新しいUploadLogRepositoryを作成します
func NewUploadLogRepository(txManager *database.TxManager) *UploadLogRepository {
	return &UploadLogRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はアップロードログを作成します
func (r *UploadLogRepository) Create(ctx context.Context, log *entity.UploadLog) error {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	err := queries.CreateUploadLog(ctx, sqlcgen.CreateUploadLogParams{
		UploadID:      log.UploadID,
		UserID:        log.UserID,
		RawPath:       log.RawPath,
		ProcessedPath: log.ProcessedPath,
		Outcome:       string(log.Outcome),
		Reason:        log.Reason,
		FileSize:      log.FileSize,
		MimeType:      log.MimeType,
		CreatedAt:     log.CreatedAt,
		UpdatedAt:     log.UpdatedAt,
	})
	return r.HandleError(err, "upload log")
}

// FindByUploadID はアップロードIDでログを検索します
func (r *UploadLogRepository) FindByUploadID(ctx context.Context, uploadID uuid.UUID) (*entity.UploadLog, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	row, err := queries.GetUploadLog(ctx, uploadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("upload log")
		}
		return nil, r.HandleError(err, "upload log")
	}

	return r.toEntity(row), nil
}

// Finalize は pending のログだけを確定させます
func (r *UploadLogRepository) Finalize(ctx context.Context, log *entity.UploadLog) error {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	affected, err := queries.FinalizeUploadLog(ctx, sqlcgen.FinalizeUploadLogParams{
		UploadID:      log.UploadID,
		ProcessedPath: log.ProcessedPath,
		Outcome:       string(log.Outcome),
		Reason:        log.Reason,
		FileSize:      log.FileSize,
		MimeType:      log.MimeType,
		UpdatedAt:     log.UpdatedAt,
	})
	if err != nil {
		return r.HandleError(err, "upload log")
	}
	if affected == 0 {
		return apperror.NewConflictErrorFrom(entity.ErrUploadLogFinalized)
	}
	return nil
}

// ListByUserID はユーザーのログを新しい順に取得します
func (r *UploadLogRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UploadLog, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	rows, err := queries.ListUploadLogsByUserID(ctx, sqlcgen.ListUploadLogsByUserIDParams{
		UserID:    userID,
		LimitVal:  int32(limit),
		OffsetVal: int32(offset),
	})
	if err != nil {
		return nil, r.HandleError(err, "upload log")
	}

	return r.toEntities(rows), nil
}

// CountByUserID はユーザーのログ数を取得します
func (r *UploadLogRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	count, err := queries.CountUploadLogsByUserID(ctx, userID)
	if err != nil {
		return 0, r.HandleError(err, "upload log")
	}
	return int(count), nil
}

// ListStalePending は作成から時間が経った pending のログを取得します
func (r *UploadLogRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.UploadLog, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	rows, err := queries.ListStalePendingUploadLogs(ctx, sqlcgen.ListStalePendingUploadLogsParams{
		Before:   before,
		LimitVal: int32(limit),
	})
	if err != nil {
		return nil, r.HandleError(err, "upload log")
	}

	return r.toEntities(rows), nil
}

// HasPendingByUserID はユーザーに pending のログがあるかどうかを判定します
func (r *UploadLogRepository) HasPendingByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := r.Querier(ctx)
	queries := sqlcgen.New(querier)

	exists, err := queries.HasPendingUploadLog(ctx, userID)
	if err != nil {
		return false, r.HandleError(err, "upload log")
	}
	return exists, nil
}

// toEntity はsqlcgen.FaceUploadLogをentity.UploadLogに変換します
func (r *UploadLogRepository) toEntity(row sqlcgen.FaceUploadLog) *entity.UploadLog {
	return entity.ReconstructUploadLog(
		row.UploadID,
		row.UserID,
		row.RawPath,
		row.ProcessedPath,
		entity.UploadOutcome(row.Outcome),
		row.Reason,
		row.FileSize,
		row.MimeType,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

// toEntities はsqlcgen.FaceUploadLog配列をentity.UploadLog配列に変換します
func (r *UploadLogRepository) toEntities(rows []sqlcgen.FaceUploadLog) []*entity.UploadLog {
	entities := make([]*entity.UploadLog, len(rows))
	for i, row := range rows {
		entities[i] = r.toEntity(row)
	}
	return entities
}

// インターフェースの実装を保証
var _ repository.UploadLogRepository = (*UploadLogRepository)(nil)
