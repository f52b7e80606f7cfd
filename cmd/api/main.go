package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/di"
	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/worker"
	"github.com/Hiro-mackay/avatar-face/internal/interface/router"
	"github.com/Hiro-mackay/avatar-face/internal/interface/server"
	"github.com/Hiro-mackay/avatar-face/pkg/config"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// @title Avatar Face API
// @version 1.0
// @description ゲームアバターの顔画像アップロードパイプライン API
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Logger setup
	if err := logger.Setup(logger.ConfigFromEnv()); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Initialize UseCases, Handlers, and Middlewares
	container.InitFaceUseCases()
	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	serverConfig.CORSOrigins = cfg.Security.CORSOrigins
	serverConfig.EnableHSTS = cfg.Security.EnableHSTS
	srv := server.NewServer(serverConfig)

	// Setup Router
	router.NewRouter(srv.Echo(), handlers, middlewares).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	workerMgr.Register(worker.NewReconcileJob(container.Face.Reconcile, worker.ReconcileJobConfig{
		Interval:       cfg.Reconcile.Interval,
		PendingTimeout: cfg.Reconcile.PendingTimeout,
	}))
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "port", cfg.Server.Port, "processing_mode", string(cfg.Processing.Mode))
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	if err := srv.Shutdown(context.Background()); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
