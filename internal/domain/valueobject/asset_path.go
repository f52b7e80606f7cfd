package valueobject

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// RawUploadPrefix は未処理アップロードの保存先プレフィックス
	RawUploadPrefix = "user-uploads/raw"
	// ProcessedAssetPrefix は処理済みアセットの保存先プレフィックス
	ProcessedAssetPrefix = "faces"
)

var (
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

var extPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)

// RawUploadPath は未処理アップロードのキーを返します
// 形式: user-uploads/raw/{user_id}/{upload_id}.{ext}
func RawUploadPath(userID, uploadID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/%s/%s.%s", RawUploadPrefix, userID, uploadID, ext)
}

// ProcessedAssetPath は処理済みアセットのキーを返します
// 形式: faces/{user_id}/{version}.{ext}
func ProcessedAssetPath(userID uuid.UUID, version int, ext string) string {
	return fmt.Sprintf("%s/%s/%d.%s", ProcessedAssetPrefix, userID, version, ext)
}

// RawUploadExt は元ファイル名の拡張子を返し、使えない場合はMIMEタイプから決めます
func RawUploadExt(fileName string, mimeType MimeType) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if extPattern.MatchString(ext) {
		return ext
	}
	return mimeType.CanonicalExt()
}

// ParseRawUploadPath は未処理アップロードのキーを分解します
func ParseRawUploadPath(key string) (userID uuid.UUID, uploadID uuid.UUID, err error) {
	rest, ok := strings.CutPrefix(key, RawUploadPrefix+"/")
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidAssetPath, key)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidAssetPath, key)
	}

	userID, err = uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	name, ext, found := strings.Cut(parts[1], ".")
	if !found || !extPattern.MatchString(ext) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidAssetPath, key)
	}

	uploadID, err = uuid.Parse(name)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	return userID, uploadID, nil
}

// ParseProcessedAssetPath は処理済みアセットのキーからユーザーIDとバージョンを取り出します
func ParseProcessedAssetPath(key string) (userID uuid.UUID, version int, err error) {
	rest, ok := strings.CutPrefix(key, ProcessedAssetPrefix+"/")
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("%w: %s", ErrInvalidAssetPath, key)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		return uuid.Nil, 0, fmt.Errorf("%w: %s", ErrInvalidAssetPath, key)
	}

	userID, err = uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	name, _, found := strings.Cut(parts[1], ".")
	if !found {
		return uuid.Nil, 0, fmt.Errorf("%w: %s", ErrInvalidAssetPath, key)
	}

	version, err = strconv.Atoi(name)
	if err != nil || version < 1 {
		return uuid.Nil, 0, fmt.Errorf("%w: bad version in %s", ErrInvalidAssetPath, key)
	}

	return userID, version, nil
}
