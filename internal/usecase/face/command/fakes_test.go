package command_test

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// fakeProfileRepo はFaceProfileRepositoryのインメモリ実装です
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]entity.FaceProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]entity.FaceProfile)}
}

func (r *fakeProfileRepo) get(userID uuid.UUID) (entity.FaceProfile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	return p, ok
}

func (r *fakeProfileRepo) put(p *entity.FaceProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = *p
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.FaceProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NewNotFoundError("face profile")
	}
	return &p, nil
}

func (r *fakeProfileRepo) EnsureExists(_ context.Context, userID uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		r.profiles[userID] = *entity.NewFaceProfile(userID, now)
	}
	return nil
}

func (r *fakeProfileRepo) ResetUploadWindow(_ context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok || !p.WindowExpired(now) {
		return false, nil
	}
	p.ResetWindow(now)
	r.profiles[userID] = p
	return true, nil
}

func (r *fakeProfileRepo) ClaimUploadSlot(_ context.Context, userID uuid.UUID, limit int, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok || p.UploadCountToday >= limit {
		return false, nil
	}
	p.UploadCountToday++
	p.FaceState = entity.FaceStatePending
	p.FacePath = nil
	p.FaceURL = nil
	p.UpdatedAt = now
	r.profiles[userID] = p
	return true, nil
}

func (r *fakeProfileRepo) CommitApproved(_ context.Context, profile *entity.FaceProfile, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profile.UserID]
	if !ok || p.FaceVersion != expectedVersion ||
		(p.FaceState != entity.FaceStatePending && p.FaceState != entity.FaceStateApproved) {
		return apperror.NewConflictErrorFrom(entity.ErrFaceProfileChanged)
	}
	p.FacePath = profile.FacePath
	p.FaceURL = profile.FaceURL
	p.FaceVersion = profile.FaceVersion
	p.FaceState = profile.FaceState
	p.FaceMeta = profile.FaceMeta
	p.UpdatedAt = profile.UpdatedAt
	r.profiles[profile.UserID] = p
	return nil
}

func (r *fakeProfileRepo) SaveState(_ context.Context, profile *entity.FaceProfile, expectedState entity.FaceState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profile.UserID]
	if !ok || p.FaceState != expectedState {
		return apperror.NewConflictError("face state changed concurrently")
	}
	p.FaceState = profile.FaceState
	p.FacePath = profile.FacePath
	p.FaceURL = profile.FaceURL
	p.FaceMeta = profile.FaceMeta
	p.UpdatedAt = profile.UpdatedAt
	r.profiles[profile.UserID] = p
	return nil
}

func (r *fakeProfileRepo) ListStalePending(_ context.Context, before time.Time, limit int) ([]*entity.FaceProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.FaceProfile
	for _, p := range r.profiles {
		if p.FaceState == entity.FaceStatePending && p.UpdatedAt.Before(before) && len(result) < limit {
			p := p
			result = append(result, &p)
		}
	}
	return result, nil
}

// fakeUploadLogRepo はUploadLogRepositoryのインメモリ実装です
type fakeUploadLogRepo struct {
	mu   sync.Mutex
	logs map[uuid.UUID]entity.UploadLog
}

func newFakeUploadLogRepo() *fakeUploadLogRepo {
	return &fakeUploadLogRepo{logs: make(map[uuid.UUID]entity.UploadLog)}
}

func (r *fakeUploadLogRepo) get(uploadID uuid.UUID) (entity.UploadLog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[uploadID]
	return l, ok
}

func (r *fakeUploadLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func (r *fakeUploadLogRepo) Create(_ context.Context, log *entity.UploadLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.logs[log.UploadID]; ok {
		return apperror.NewConflictError("upload log already exists")
	}
	r.logs[log.UploadID] = *log
	return nil
}

func (r *fakeUploadLogRepo) FindByUploadID(_ context.Context, uploadID uuid.UUID) (*entity.UploadLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[uploadID]
	if !ok {
		return nil, apperror.NewNotFoundError("upload log")
	}
	return &l, nil
}

func (r *fakeUploadLogRepo) Finalize(_ context.Context, log *entity.UploadLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.logs[log.UploadID]
	if !ok {
		return apperror.NewNotFoundError("upload log")
	}
	if !stored.IsPending() {
		return apperror.NewConflictErrorFrom(entity.ErrUploadLogFinalized)
	}
	r.logs[log.UploadID] = *log
	return nil
}

func (r *fakeUploadLogRepo) ListByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UploadLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.UploadLog
	for _, l := range r.logs {
		if l.UserID == userID {
			l := l
			result = append(result, &l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if offset >= len(result) {
		return nil, nil
	}
	return result[offset:min(len(result), offset+limit)], nil
}

func (r *fakeUploadLogRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.logs {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUploadLogRepo) ListStalePending(_ context.Context, before time.Time, limit int) ([]*entity.UploadLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.UploadLog
	for _, l := range r.logs {
		if l.IsPending() && l.CreatedAt.Before(before) && len(result) < limit {
			l := l
			result = append(result, &l)
		}
	}
	return result, nil
}

func (r *fakeUploadLogRepo) HasPendingByUserID(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.UserID == userID && l.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

// fakeAssetStore はAssetStoreのインメモリ実装です
type fakeAssetStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failGet    bool
	failPutNew bool
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{objects: make(map[string][]byte)}
}

func (s *fakeAssetStore) has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

func (s *fakeAssetStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *fakeAssetStore) PutNew(_ context.Context, path string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPutNew {
		return errors.New("bucket unavailable")
	}
	if _, ok := s.objects[path]; ok {
		return service.ErrAssetExists
	}
	s.objects[path] = bytes.Clone(data)
	return nil
}

func (s *fakeAssetStore) Put(_ context.Context, path string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = bytes.Clone(data)
	return nil
}

func (s *fakeAssetStore) Get(_ context.Context, path string) (*service.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, errors.New("connection reset by peer")
	}
	data, ok := s.objects[path]
	if !ok {
		return nil, service.ErrAssetNotFound
	}
	return &service.Asset{Data: bytes.Clone(data), Size: int64(len(data))}, nil
}

func (s *fakeAssetStore) PublicURL(path string) string {
	return "https://cdn.test/avatar-faces/" + path
}

// fakeLock はユーザーごとに処理を直列化するProcessingLockです
// 取得できるまで待ちます
type fakeLock struct {
	mu    sync.Mutex
	users map[uuid.UUID]*sync.Mutex
}

func newFakeLock() *fakeLock {
	return &fakeLock{users: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *fakeLock) Acquire(_ context.Context, userID uuid.UUID) (func(context.Context) error, error) {
	l.mu.Lock()
	userMu, ok := l.users[userID]
	if !ok {
		userMu = &sync.Mutex{}
		l.users[userID] = userMu
	}
	l.mu.Unlock()

	userMu.Lock()
	var once sync.Once
	return func(context.Context) error {
		once.Do(userMu.Unlock)
		return nil
	}, nil
}

// fakePublisher は配信されたイベントを記録します
type fakePublisher struct {
	mu     sync.Mutex
	events []service.FaceEvent
}

func (p *fakePublisher) Publish(_ context.Context, event service.FaceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []service.FaceEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]service.FaceEventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

// fakeJPEG はJPEGとして判定されるsizeバイトのデータを返します
func fakeJPEG(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00})
	return data
}

// fakePNG はPNGとして判定されるsizeバイトのデータを返します
func fakePNG(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'})
	return data
}

func ptr(v float64) *float64 {
	return &v
}
