package jwt

import "time"

// ServiceAudience は処理関数の内部RPCで要求される audience です
const ServiceAudience = "avatar-face-internal"

// Config はJWT設定を定義します
type Config struct {
	SecretKey          string        // HMAC署名用シークレットキー
	Issuer             string        // 発行者
	Audience           []string      // 対象者
	AccessTokenExpiry  time.Duration // アクセストークン有効期限
	ServiceTokenExpiry time.Duration // サービストークン有効期限
}

// DefaultConfig はデフォルト設定を返します
func DefaultConfig() Config {
	return Config{
		Issuer:             "avatar-face",
		Audience:           []string{"avatar-face-api"},
		AccessTokenExpiry:  15 * time.Minute,
		ServiceTokenExpiry: time.Minute,
	}
}

// Validate は設定を検証します
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return ErrSecretKeyRequired
	}
	if len(c.SecretKey) < 32 {
		return ErrSecretKeyTooShort
	}
	return nil
}
