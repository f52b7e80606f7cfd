package entity

import (
	"errors"
	"fmt"
)

// FaceState は顔画像の状態を表します
type FaceState string

const (
	FaceStateNone     FaceState = "none"
	FaceStatePending  FaceState = "pending"
	FaceStateApproved FaceState = "approved"
	FaceStateRejected FaceState = "rejected"
	FaceStateFlagged  FaceState = "flagged"
)

var (
	ErrInvalidFaceState      = errors.New("invalid face state")
	ErrInvalidFaceTransition = errors.New("invalid face state transition")
	ErrFaceProfileChanged    = errors.New(ReasonProfileChanged)
)

// ParseFaceState は文字列からFaceStateを生成します
func ParseFaceState(s string) (FaceState, error) {
	state := FaceState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFaceState, s)
	}
	return state, nil
}

// IsValid は定義済みの状態かどうかを判定します
func (s FaceState) IsValid() bool {
	switch s {
	case FaceStateNone, FaceStatePending, FaceStateApproved, FaceStateRejected, FaceStateFlagged:
		return true
	}
	return false
}

// String は文字列を返します
func (s FaceState) String() string {
	return string(s)
}

// ServesAsset はアセットを配信する状態かどうかを判定します
func (s FaceState) ServesAsset() bool {
	return s == FaceStateApproved
}

// CanTransitionTo は next への遷移が許されるかどうかを判定します
// pending と none へはどの状態からも遷移できます（新規アップロードと削除）
// approved/rejected/flagged へは pending か approved からのみ遷移できます
func (s FaceState) CanTransitionTo(next FaceState) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}

	switch next {
	case FaceStatePending, FaceStateNone:
		return true
	case FaceStateApproved, FaceStateRejected, FaceStateFlagged:
		return s == FaceStatePending || s == FaceStateApproved
	}
	return false
}

// TransitionTo は遷移可能であれば next を返します
func (s FaceState) TransitionTo(next FaceState) (FaceState, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidFaceTransition, s, next)
	}
	return next, nil
}
