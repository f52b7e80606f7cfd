package middleware

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ContextKeyUserID  = "user_id"
	ContextKeyService = "service"
)

var errNoUserID = errors.New("user id not set in context")

// GetUserID はコンテキストからユーザーIDを取得します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserUUID はコンテキストからユーザーIDをUUIDとして取得します
func GetUserUUID(c echo.Context) (uuid.UUID, error) {
	userID := GetUserID(c)
	if userID == "" {
		return uuid.Nil, errNoUserID
	}
	return uuid.Parse(userID)
}

// SetUserID はコンテキストにユーザーIDを設定します
func SetUserID(c echo.Context, userID string) {
	c.Set(ContextKeyUserID, userID)
}

// GetService はサービストークンの呼び出し元名を取得します
func GetService(c echo.Context) string {
	if svc, ok := c.Get(ContextKeyService).(string); ok {
		return svc
	}
	return ""
}
