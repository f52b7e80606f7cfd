package entity

import (
	"time"

	"github.com/google/uuid"
)

// アップロード制限
const (
	DailyUploadLimit = 3
	UploadWindow     = 24 * time.Hour
)

// FaceProfile はユーザーごとの顔画像プロファイルです
// FacePath/FaceURL は FaceState が approved のときだけ値を持ちます
type FaceProfile struct {
	UserID           uuid.UUID
	FacePath         *string
	FaceURL          *string
	FaceVersion      int
	FaceState        FaceState
	FaceMeta         *FaceMeta
	UploadCountToday int
	LastUploadReset  time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewFaceProfile は未登録ユーザーの既定プロファイルを作成します
// 保存されていないプロファイルはこの値として扱います
func NewFaceProfile(userID uuid.UUID, now time.Time) *FaceProfile {
	return &FaceProfile{
		UserID:           userID,
		FaceVersion:      0,
		FaceState:        FaceStateNone,
		UploadCountToday: 0,
		LastUploadReset:  now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ReconstructFaceProfile はDBからFaceProfileを復元します
func ReconstructFaceProfile(
	userID uuid.UUID,
	facePath *string,
	faceURL *string,
	faceVersion int,
	faceState FaceState,
	faceMeta *FaceMeta,
	uploadCountToday int,
	lastUploadReset time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *FaceProfile {
	return &FaceProfile{
		UserID:           userID,
		FacePath:         facePath,
		FaceURL:          faceURL,
		FaceVersion:      faceVersion,
		FaceState:        faceState,
		FaceMeta:         faceMeta,
		UploadCountToday: uploadCountToday,
		LastUploadReset:  lastUploadReset,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// WindowExpired は24時間のウィンドウが経過したかどうかを判定します
func (p *FaceProfile) WindowExpired(now time.Time) bool {
	return now.Sub(p.LastUploadReset) >= UploadWindow
}

// WindowResetAt は現在のウィンドウが切り替わる時刻を返します
func (p *FaceProfile) WindowResetAt() time.Time {
	return p.LastUploadReset.Add(UploadWindow)
}

// ResetWindow はカウンタを0に戻し、ウィンドウを now から開始します
func (p *FaceProfile) ResetWindow(now time.Time) {
	p.UploadCountToday = 0
	p.LastUploadReset = now
	p.UpdatedAt = now
}

// CanUpload は現在のウィンドウで追加アップロードできるかどうかを判定します
func (p *FaceProfile) CanUpload() bool {
	return p.UploadCountToday < DailyUploadLimit
}

// RemainingUploads は現在のウィンドウの残りアップロード数を返します
func (p *FaceProfile) RemainingUploads() int {
	return max(0, DailyUploadLimit-p.UploadCountToday)
}

// NextVersion は次に割り当てるバージョンを返します
func (p *FaceProfile) NextVersion() int {
	return p.FaceVersion + 1
}

// HasAsset は配信中のアセットがあるかどうかを判定します
func (p *FaceProfile) HasAsset() bool {
	return p.FaceState.ServesAsset() && p.FacePath != nil
}

// MarkPending は新しいアップロードを受け付けた状態にします
func (p *FaceProfile) MarkPending(now time.Time) error {
	if err := p.transition(FaceStatePending); err != nil {
		return err
	}
	p.clearAsset()
	p.UpdatedAt = now
	return nil
}

// Approve は処理済みアセットを反映し、バージョンを1つ進めます
func (p *FaceProfile) Approve(path, url string, meta FaceMeta, now time.Time) error {
	if err := p.transition(FaceStateApproved); err != nil {
		return err
	}
	p.FaceVersion = p.NextVersion()
	p.FacePath = &path
	p.FaceURL = &url
	p.FaceMeta = &meta
	p.UpdatedAt = now
	return nil
}

// Moderate はモデレーション結果（rejected/flagged）を反映します
func (p *FaceProfile) Moderate(state FaceState, now time.Time) error {
	if state != FaceStateRejected && state != FaceStateFlagged {
		return ErrInvalidFaceTransition
	}
	if err := p.transition(state); err != nil {
		return err
	}
	p.clearAsset()
	p.UpdatedAt = now
	return nil
}

// Reject は処理が完了しなかったアップロードを却下状態にします
func (p *FaceProfile) Reject(now time.Time) error {
	return p.Moderate(FaceStateRejected, now)
}

// Remove はアセットを外し、初期状態に戻します
// バージョンは戻しません
func (p *FaceProfile) Remove(now time.Time) error {
	if err := p.transition(FaceStateNone); err != nil {
		return err
	}
	p.clearAsset()
	p.FaceMeta = nil
	p.UpdatedAt = now
	return nil
}

func (p *FaceProfile) transition(next FaceState) error {
	state, err := p.FaceState.TransitionTo(next)
	if err != nil {
		return err
	}
	p.FaceState = state
	return nil
}

func (p *FaceProfile) clearAsset() {
	p.FacePath = nil
	p.FaceURL = nil
}
