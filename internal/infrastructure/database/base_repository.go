package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager) *BaseRepository {
	return &BaseRepository{txManager: txManager}
}

// Querier はクエリ実行用のインターフェースを返す
// トランザクション中であればTx、そうでなければPoolを返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// HandleError はpgxのエラーをアプリケーションエラーに変換する
// resource は NOT_FOUND のメッセージに使う
func (r *BaseRepository) HandleError(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFoundError(resource)
	}
	if isLockTimeout(err) {
		return apperror.NewConflictError(resource + " is being updated by another request")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperror.NewConflictError(resource + " already exists")
		case "23514": // check_violation
			return apperror.NewInternalError(errors.New("check constraint violation: " + pgErr.ConstraintName))
		}
	}

	return apperror.NewInternalError(err)
}

