package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
)

// AssetStore はMinIO上の顔画像アセットを扱います
type AssetStore struct {
	client        *minio.Client
	bucketName    string
	publicBaseURL string
	maxReadSize   int64
}

// NewAssetStore は新しいAssetStoreを作成します
// publicBaseURL はバケットを公開しているCDN等のベースURLです
func NewAssetStore(client *MinIOClient, publicBaseURL string) *AssetStore {
	return &AssetStore{
		client:        client.Client(),
		bucketName:    client.BucketName(),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		// 上限を1バイト超えて読めばサイズ超過を検出できる
		maxReadSize: service.MaxUploadSize + 1,
	}
}

// PutNew はキーが存在しない場合だけ保存します
func (s *AssetStore) PutNew(ctx context.Context, path string, data []byte, contentType string) error {
	exists, err := s.exists(ctx, path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", service.ErrAssetExists, path)
	}
	return s.Put(ctx, path, data, contentType)
}

// Put はオブジェクトを保存します（既存は上書き）
func (s *AssetStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucketName, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", path, err)
	}
	return nil
}

// Get はオブジェクトを取得します
func (s *AssetStore) Get(ctx context.Context, path string) (*service.Asset, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", path, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %s", service.ErrAssetNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat object %s: %w", path, err)
	}

	data, err := io.ReadAll(io.LimitReader(obj, s.maxReadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", path, err)
	}

	return &service.Asset{
		Data:        data,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

// PublicURL は公開URLを返します
func (s *AssetStore) PublicURL(path string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(path, "/")
}

func (s *AssetStore) exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucketName, path, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// インターフェースの実装を保証
var _ service.AssetStore = (*AssetStore)(nil)
