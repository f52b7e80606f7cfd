package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Hiro-mackay/avatar-face/internal/infrastructure/di"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	"github.com/Hiro-mackay/avatar-face/pkg/config"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// reconcile は pending のまま残ったアップロードを1回だけ整合します
// cron などから単発で実行する用途です
func main() {
	if err := logger.Setup(logger.ConfigFromEnv()); err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pendingTimeout := pflag.Duration("pending-timeout", cfg.Reconcile.PendingTimeout, "expire uploads pending longer than this")
	batchSize := pflag.Int("batch-size", facecmd.DefaultReconcileBatchSize, "maximum number of uploads handled in one run")
	pflag.Parse()

	if *pendingTimeout <= 0 {
		slog.Error("pending-timeout must be positive", "pending_timeout", pendingTimeout.String())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	container.InitFaceUseCases()

	start := time.Now()
	output, err := container.Face.ReconcilePending.Execute(ctx, facecmd.ReconcilePendingInput{
		PendingTimeout: *pendingTimeout,
		BatchSize:      *batchSize,
	})
	if err != nil {
		slog.Error("reconcile failed", "error", err)
		container.Close()
		os.Exit(1)
	}

	slog.Info("reconcile completed",
		"expired_uploads", output.ExpiredUploads,
		"rejected_profiles", output.RejectedProfiles,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err := container.Close(); err != nil {
		slog.Error("failed to close container", "error", err)
	}
}
