package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
)

const (
	defaultUploadLogLimit = 20
	maxUploadLogLimit     = 100
)

// ListUploadLogsInput はアップロード履歴取得の入力を定義します
type ListUploadLogsInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ListUploadLogsOutput はアップロード履歴取得の出力を定義します
type ListUploadLogsOutput struct {
	Logs   []*entity.UploadLog
	Total  int
	Limit  int
	Offset int
}

// ListUploadLogsQuery は自分のアップロード履歴を取得するクエリです
type ListUploadLogsQuery struct {
	uploadLogRepo repository.UploadLogRepository
}

// NewListUploadLogsQuery は新しいListUploadLogsQueryを作成します
func NewListUploadLogsQuery(uploadLogRepo repository.UploadLogRepository) *ListUploadLogsQuery {
	return &ListUploadLogsQuery{uploadLogRepo: uploadLogRepo}
}

// Execute はアップロード履歴を新しい順に取得します
func (q *ListUploadLogsQuery) Execute(ctx context.Context, input ListUploadLogsInput) (*ListUploadLogsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultUploadLogLimit
	}
	if limit > maxUploadLogLimit {
		limit = maxUploadLogLimit
	}
	offset := max(input.Offset, 0)

	logs, err := q.uploadLogRepo.ListByUserID(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := q.uploadLogRepo.CountByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []*entity.UploadLog{}
	}

	return &ListUploadLogsOutput{
		Logs:   logs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
