package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrLockBusy = errors.New("processing lock is held by another request")
)

// ProcessingLock はユーザー単位の処理ロックです
type ProcessingLock interface {
	// Acquire はロックを取得し、解放関数を返します
	// 他のリクエストが保持中ならErrLockBusyを返します
	Acquire(ctx context.Context, userID uuid.UUID) (release func(context.Context) error, err error)
}
