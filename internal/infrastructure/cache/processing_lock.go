package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
)

// DefaultProcessingLockTTL は処理ロックの既定の保持時間
// 処理がクラッシュしてもこの時間で自動解放されます
const DefaultProcessingLockTTL = 60 * time.Second

// 保持者のトークンが一致する場合だけ削除
var releaseLockScript = redis.NewScript(`
    if redis.call('GET', KEYS[1]) == ARGV[1] then
        return redis.call('DEL', KEYS[1])
    end
    return 0
`)

// ProcessingLock はRedisを使ったユーザー単位の処理ロックです
type ProcessingLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProcessingLock は新しいProcessingLockを作成します
func NewProcessingLock(client *redis.Client, ttl time.Duration) *ProcessingLock {
	if ttl <= 0 {
		ttl = DefaultProcessingLockTTL
	}
	return &ProcessingLock{client: client, ttl: ttl}
}

// Acquire はロックを取得し、解放関数を返します
func (l *ProcessingLock) Acquire(ctx context.Context, userID uuid.UUID) (func(context.Context) error, error) {
	key := ProcessingLockKey(userID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire processing lock: %w", err)
	}
	if !ok {
		return nil, service.ErrLockBusy
	}

	release := func(ctx context.Context) error {
		if err := releaseLockScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release processing lock: %w", err)
		}
		return nil
	}
	return release, nil
}

// インターフェースの実装を保証
var _ service.ProcessingLock = (*ProcessingLock)(nil)
