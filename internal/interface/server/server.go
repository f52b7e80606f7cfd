package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Hiro-mackay/avatar-face/internal/interface/middleware"
	"github.com/Hiro-mackay/avatar-face/internal/interface/validator"
)

// Config はサーバー設定を定義します
type Config struct {
	Host            string        // ホスト (default: "")
	Port            int           // ポート (default: 8080)
	ReadTimeout     time.Duration // 読み取りタイムアウト (default: 30s)
	WriteTimeout    time.Duration // 書き込みタイムアウト (default: 60s)
	ShutdownTimeout time.Duration // シャットダウンタイムアウト (default: 10s)
	// BodyLimit はリクエストボディ全体の上限
	// 画像の上限(5MB)より大きくし、超過はアップロードの検証で報告します
	BodyLimit   string
	CORSOrigins []string
	EnableHSTS  bool
	Debug       bool
}

// DefaultConfig はデフォルト設定を返します
func DefaultConfig() Config {
	return Config{
		Host:            "",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		BodyLimit:       "8M",
		CORSOrigins:     []string{"http://localhost:3000"},
	}
}

// Server はHTTPサーバーを提供します
type Server struct {
	echo   *echo.Echo
	config Config
}

// NewServer は新しいServerを作成します
// バリデーター・エラーハンドラー・共通ミドルウェアまで設定します
func NewServer(cfg Config) *Server {
	e := echo.New()

	// 基本設定
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	// サーバーのタイムアウト設定
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// 共通ミドルウェア（順序に意味があります）
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	e.Use(middleware.CORS(cfg.CORSOrigins))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	return &Server{
		echo:   e,
		config: cfg,
	}
}

// Echo は内部のecho.Echoを返します
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start はサーバーを開始します
func (s *Server) Start() error {
	return s.echo.Start(s.Address())
}

// Shutdown はサーバーを停止します
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// Address はサーバーのアドレスを返します
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
