package service

import (
	"context"
	"errors"
)

var (
	ErrAssetExists   = errors.New("asset already exists")
	ErrAssetNotFound = errors.New("asset not found")
)

// Asset はストレージから取得したオブジェクトです
type Asset struct {
	Data        []byte
	ContentType string
	Size        int64
}

// AssetStore は顔画像のオブジェクトストレージ操作を定義します
type AssetStore interface {
	// PutNew はキーが存在しない場合だけ保存します（存在すればErrAssetExists）
	PutNew(ctx context.Context, path string, data []byte, contentType string) error
	// Put は上書きを許して保存します
	Put(ctx context.Context, path string, data []byte, contentType string) error
	// Get はオブジェクトを取得します（なければErrAssetNotFound）
	Get(ctx context.Context, path string) (*Asset, error)
	// PublicURL は公開URLを返します
	PublicURL(path string) string
}
