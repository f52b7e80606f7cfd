package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "avatar-face"
	// statementTimeout は1文あたりの上限（ミリ秒）
	statementTimeout = "10000"
	connectTimeout   = 10 * time.Second
)

// PostgresClient はPostgreSQLのコネクションプールを保持します
type PostgresClient struct {
	pool *pgxpool.Pool
}

// NewPostgresClient は接続プールを作成し、疎通を確認します
// 顔画像の処理は1件ごとに短いトランザクションを使うため、プールは小さめにします
func NewPostgresClient(ctx context.Context, databaseURL string) (*PostgresClient, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = statementTimeout

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{pool: pool}, nil
}

// Pool はコネクションプールを返します
func (c *PostgresClient) Pool() *pgxpool.Pool {
	return c.pool
}

// Close はコネクションプールを閉じます
func (c *PostgresClient) Close() {
	c.pool.Close()
}

// Health はヘルスチェック用に疎通を確認します
func (c *PostgresClient) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}
