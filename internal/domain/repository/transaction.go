package repository

import "context"

// TransactionManager は複数リポジトリへの書き込みをまとめます
// 処理結果の反映ではアップロードログの確定とプロファイルの更新を同じトランザクションで行います
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
