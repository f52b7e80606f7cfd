package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	// 処理ロック
	PrefixProcessingLock KeyPrefix = "lock:face" // lock:face:{user_id}

	// レート制限
	PrefixRateLimit KeyPrefix = "ratelimit" // ratelimit:{type}:{identifier}
)

// ProcessingLockKey はユーザー単位の処理ロックキーを生成します
func ProcessingLockKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", PrefixProcessingLock, userID.String())
}

// RateLimitKey はレート制限キーを生成します
func RateLimitKey(limitType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixRateLimit, limitType, identifier)
}
