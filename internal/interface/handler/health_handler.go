package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// healthCheckTimeout は依存先1つあたりのチェック時間の上限
const healthCheckTimeout = 2 * time.Second

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	checkers map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
	}
}

// RegisterChecker はヘルスチェッカーを登録します
// postgres/redis/minio を登録する想定です
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                       `json:"status"`
	Services map[string]DependencyStatus `json:"services,omitempty"`
}

// DependencyStatus は依存先のステータスを定義します
type DependencyStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Message   string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready はレディネスチェックを実行します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	services := make(map[string]DependencyStatus, len(h.checkers))
	allHealthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			defer cancel()

			start := time.Now()
			err := checker.Health(checkCtx)
			status := DependencyStatus{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				status.Status = "unhealthy"
				status.Message = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			services[name] = status
			if err != nil {
				allHealthy = false
			}
		}(name, checker)
	}

	wg.Wait()

	if !allHealthy {
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Services: services})
	}
	return c.JSON(http.StatusOK, ReadyResponse{Status: "ready", Services: services})
}
