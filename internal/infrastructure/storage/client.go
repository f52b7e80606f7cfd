package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Hiro-mackay/avatar-face/internal/domain/valueobject"
)

// Config はMinIO接続設定を定義します
// 未処理アップロードと処理済みアセットは同じバケットにプレフィックスを分けて置きます
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	Region          string
}

// DefaultConfig はデフォルト設定を返します
func DefaultConfig() Config {
	return Config{Region: "us-east-1"}
}

// MinIOClient はバケットにひも付いたMinIO接続です
type MinIOClient struct {
	client *minio.Client
	bucket string
	region string
}

// NewMinIOClient は新しいMinIOClientを作成します（接続確認はEnsureBucketで行います）
func NewMinIOClient(cfg Config) (*MinIOClient, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("minio bucket name is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{client: client, bucket: cfg.BucketName, region: cfg.Region}, nil
}

// Client は内部のminio.Clientを返します
func (m *MinIOClient) Client() *minio.Client {
	return m.client
}

// BucketName はバケット名を返します
func (m *MinIOClient) BucketName() string {
	return m.bucket
}

// Health はヘルスチェック用にバケットへの到達性を確認します
func (m *MinIOClient) Health(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

// EnsureBucket はバケットを用意し、処理済みアセットだけを匿名で読めるようにします
// 未処理アップロードは公開しません
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	if err := m.client.SetBucketPolicy(ctx, m.bucket, publicReadPolicy(m.bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/%s/*"]
  }]
}`, bucket, valueobject.ProcessedAssetPrefix)
}
