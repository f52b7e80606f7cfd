package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UploadOutcome はアップロード試行の結果を表します
type UploadOutcome string

const (
	UploadOutcomePending  UploadOutcome = "pending"
	UploadOutcomeAccepted UploadOutcome = "accepted"
	UploadOutcomeRejected UploadOutcome = "rejected"
	UploadOutcomeFlagged  UploadOutcome = "flagged"
)

// 記録される却下理由
const (
	ReasonDownloadFailed     = "download failed"
	ReasonDailyLimitReached  = "Daily upload limit reached"
	ReasonProcessingTimedOut = "processing timed out"
	ReasonStoreFailed        = "processed asset write failed"
	ReasonProfileChanged     = "face profile changed during processing"
	ReasonProfileNotPending  = "face profile is not awaiting processing"
)

var (
	ErrUploadLogFinalized = errors.New("upload log already finalized")
)

// UploadLog はアップロード試行1回分の記録です
// Outcome は pending からのみ遷移します
type UploadLog struct {
	UploadID      uuid.UUID
	UserID        uuid.UUID
	RawPath       string
	ProcessedPath *string
	Outcome       UploadOutcome
	Reason        *string
	FileSize      int64
	MimeType      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUploadLog は pending 状態のアップロードログを作成します
func NewUploadLog(uploadID, userID uuid.UUID, rawPath string, fileSize int64, mimeType string, now time.Time) *UploadLog {
	return &UploadLog{
		UploadID:  uploadID,
		UserID:    userID,
		RawPath:   rawPath,
		Outcome:   UploadOutcomePending,
		FileSize:  fileSize,
		MimeType:  mimeType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReconstructUploadLog はDBからUploadLogを復元します
func ReconstructUploadLog(
	uploadID uuid.UUID,
	userID uuid.UUID,
	rawPath string,
	processedPath *string,
	outcome UploadOutcome,
	reason *string,
	fileSize int64,
	mimeType string,
	createdAt time.Time,
	updatedAt time.Time,
) *UploadLog {
	return &UploadLog{
		UploadID:      uploadID,
		UserID:        userID,
		RawPath:       rawPath,
		ProcessedPath: processedPath,
		Outcome:       outcome,
		Reason:        reason,
		FileSize:      fileSize,
		MimeType:      mimeType,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// IsPending は結果が未確定かどうかを判定します
func (l *UploadLog) IsPending() bool {
	return l.Outcome == UploadOutcomePending
}

// IsStale は pending のまま timeout を過ぎたかどうかを判定します
func (l *UploadLog) IsStale(now time.Time, timeout time.Duration) bool {
	return l.IsPending() && now.Sub(l.CreatedAt) >= timeout
}

// ReasonText は却下理由を返します（なければ空文字）
func (l *UploadLog) ReasonText() string {
	if l.Reason == nil {
		return ""
	}
	return *l.Reason
}

// Accept は処理成功を記録します
func (l *UploadLog) Accept(processedPath string, fileSize int64, mimeType string, now time.Time) error {
	if !l.IsPending() {
		return ErrUploadLogFinalized
	}
	l.Outcome = UploadOutcomeAccepted
	l.ProcessedPath = &processedPath
	l.Reason = nil
	l.FileSize = fileSize
	l.MimeType = mimeType
	l.UpdatedAt = now
	return nil
}

// Reject は却下を理由付きで記録します
func (l *UploadLog) Reject(reason string, now time.Time) error {
	return l.finalize(UploadOutcomeRejected, reason, now)
}

// Flag は保留（要確認）を理由付きで記録します
func (l *UploadLog) Flag(reason string, now time.Time) error {
	return l.finalize(UploadOutcomeFlagged, reason, now)
}

func (l *UploadLog) finalize(outcome UploadOutcome, reason string, now time.Time) error {
	if !l.IsPending() {
		return ErrUploadLogFinalized
	}
	l.Outcome = outcome
	l.Reason = &reason
	l.UpdatedAt = now
	return nil
}
