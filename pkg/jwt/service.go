package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTService はJWT操作を提供します
type JWTService struct {
	config Config
}

// NewJWTService は新しいJWTServiceを作成します
func NewJWTService(cfg Config) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateAccessToken はアクセストークンを生成します
// 本番では認証基盤が発行するため、開発用ツールとテストで使用します
func (s *JWTService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()

	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			Audience:  s.config.Audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, nil
}

// ValidateAccessToken はアクセストークンを検証します
func (s *JWTService) ValidateAccessToken(tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateServiceToken は処理関数呼び出し用の短命トークンを生成します
func (s *JWTService) GenerateServiceToken(service string) (string, error) {
	now := time.Now()

	claims := ServiceTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   service,
			Audience:  jwt.ClaimStrings{ServiceAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.ServiceTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Service: service,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}

	return token, nil
}

// ValidateServiceToken はサービストークンを検証します
func (s *JWTService) ValidateServiceToken(tokenString string) (*ServiceTokenClaims, error) {
	claims := &ServiceTokenClaims{}
	if err := s.parse(tokenString, claims, jwt.WithAudience(ServiceAudience)); err != nil {
		return nil, fmt.Errorf("failed to parse service token: %w", err)
	}
	if claims.Service == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// parse は署名方式を固定してトークンを検証します
func (s *JWTService) parse(tokenString string, claims jwt.Claims, opts ...jwt.ParserOption) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSigningMethod, token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, opts...)
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
