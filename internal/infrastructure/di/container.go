package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Hiro-mackay/avatar-face/internal/domain/repository"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/audit"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/cache"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/database"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/messaging"
	infraRepo "github.com/Hiro-mackay/avatar-face/internal/infrastructure/repository"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/storage"
	"github.com/Hiro-mackay/avatar-face/pkg/config"
	"github.com/Hiro-mackay/avatar-face/pkg/jwt"
)

// auditBufferSize は監査ログの非同期書き込みバッファ
const auditBufferSize = 256

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	MinIOClient *storage.MinIOClient
	TxManager   *database.TxManager

	// Services
	JWTService     *jwt.JWTService
	RateLimiter    *cache.RateLimiter
	ProcessingLock service.ProcessingLock
	AssetStore     service.AssetStore
	EventPublisher service.EventPublisher
	AuditService   *audit.Service

	// Repositories
	FaceProfileRepo repository.FaceProfileRepository
	UploadLogRepo   repository.UploadLogRepository
	AuditLogRepo    repository.AuditLogRepository

	// Face UseCases
	Face *FaceUseCases

	amqpPublisher *messaging.Publisher
	config        *config.Config
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
	} else {
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		slog.Info("connected to PostgreSQL")
	}

	// Redis
	redisClient := opts.RedisClient
	if redisClient == nil {
		slog.Info("connecting to Redis...")
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = client
		redisClient = client.Client()
		slog.Info("connected to Redis")
	}
	c.RateLimiter = cache.NewRateLimiter(redisClient)
	c.ProcessingLock = cache.NewProcessingLock(redisClient, cache.DefaultProcessingLockTTL)

	// MinIO
	if opts.AssetStore != nil {
		c.AssetStore = opts.AssetStore
	} else {
		slog.Info("connecting to MinIO...")
		storageConfig := storage.DefaultConfig()
		storageConfig.Endpoint = cfg.Storage.Endpoint
		storageConfig.AccessKeyID = cfg.Storage.AccessKeyID
		storageConfig.SecretAccessKey = cfg.Storage.SecretAccessKey
		storageConfig.BucketName = cfg.Storage.BucketName
		storageConfig.UseSSL = cfg.Storage.UseSSL
		minioClient, err := storage.NewMinIOClient(storageConfig)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
		}
		if err := minioClient.EnsureBucket(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to ensure MinIO bucket: %w", err)
		}
		c.MinIOClient = minioClient
		c.AssetStore = storage.NewAssetStore(minioClient, cfg.Storage.PublicBaseURL)
		slog.Info("connected to MinIO", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.BucketName)
	}

	// Event Publisher
	c.EventPublisher = newEventPublisher(c, cfg.Messaging, opts.EventPublisher)

	// JWT Service
	c.JWTService = jwt.NewJWTService(jwt.Config{
		SecretKey:          cfg.JWT.SecretKey,
		Issuer:             cfg.JWT.Issuer,
		Audience:           cfg.JWT.Audience,
		AccessTokenExpiry:  cfg.JWT.AccessTokenExpiry,
		ServiceTokenExpiry: cfg.JWT.ServiceTokenExpiry,
	})

	// Repositories
	c.FaceProfileRepo = infraRepo.NewFaceProfileRepository(c.TxManager)
	c.UploadLogRepo = infraRepo.NewUploadLogRepository(c.TxManager)
	c.AuditLogRepo = infraRepo.NewAuditLogRepository(c.TxManager)

	// Audit Service
	c.AuditService = audit.NewService(c.AuditLogRepo, auditBufferSize)

	return c, nil
}

// newEventPublisher はAMQPの設定があればPublisherを、なければ何もしないPublisherを返します
// 接続に失敗しても起動は止めません（イベント配信はベストエフォート）
func newEventPublisher(c *Container, cfg config.MessagingConfig, override service.EventPublisher) service.EventPublisher {
	if override != nil {
		return override
	}
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, face events will not be published")
		return messaging.NewNoopPublisher()
	}

	publisher, err := messaging.NewPublisher(messaging.Config{
		URL:      cfg.AMQPURL,
		Exchange: cfg.Exchange,
	})
	if err != nil {
		slog.Warn("failed to connect to AMQP broker, face events disabled", "error", err)
		return messaging.NewNoopPublisher()
	}
	c.amqpPublisher = publisher
	slog.Info("connected to AMQP broker", "exchange", cfg.Exchange)
	return publisher
}

// InitFaceUseCases はFace UseCasesを初期化します
func (c *Container) InitFaceUseCases() {
	c.Face = NewFaceUseCases(c, c.config.Processing)
}

// Close はリソースをクリーンアップします
// 監査ログはDBを閉じる前に書き切ります
func (c *Container) Close() error {
	var errs []error

	if c.AuditService != nil {
		c.AuditService.Shutdown()
	}

	if c.amqpPublisher != nil {
		if err := c.amqpPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close AMQP publisher: %w", err))
		}
	}

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool   *pgxpool.Pool
	RedisClient    *redis.Client
	AssetStore     service.AssetStore
	EventPublisher service.EventPublisher
}
