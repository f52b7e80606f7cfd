package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims はアクセストークンのクレームを定義します
// 認証基盤が発行し、このサービスはUserIDのみを参照します
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"uid"`
}

// ServiceTokenClaims はサービス間呼び出し用トークンのクレームを定義します
type ServiceTokenClaims struct {
	jwt.RegisteredClaims
	Service string `json:"svc"`
}
