package worker

import (
	"context"
	"log/slog"
	"time"
)

// ReconcileJobConfig は整合処理ジョブの設定です
type ReconcileJobConfig struct {
	// Interval は実行間隔です
	Interval time.Duration
	// PendingTimeout はこの時間を過ぎた pending のアップロードを打ち切ります
	PendingTimeout time.Duration
}

// ReconcileFunc は整合処理を1回実行し、却下したアップロード数とプロファイル数を返します
type ReconcileFunc func(ctx context.Context, pendingTimeout time.Duration) (expired int, rejected int, err error)

// NewReconcileJob は pending のまま残ったアップロードを片付けるジョブを作成します
func NewReconcileJob(reconcileFn ReconcileFunc, cfg ReconcileJobConfig) Job {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.PendingTimeout <= 0 {
		cfg.PendingTimeout = 15 * time.Minute
	}

	return Job{
		Name:     "face_reconcile",
		Interval: cfg.Interval,
		Timeout:  cfg.Interval,
		Fn: func(ctx context.Context) error {
			expired, rejected, err := reconcileFn(ctx, cfg.PendingTimeout)
			if err != nil {
				return err
			}
			if expired > 0 || rejected > 0 {
				slog.Info("face reconcile completed", "expired_uploads", expired, "rejected_profiles", rejected)
			}
			return nil
		},
	}
}
