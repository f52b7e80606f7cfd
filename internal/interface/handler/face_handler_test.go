package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/interface/handler"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	faceqry "github.com/Hiro-mackay/avatar-face/internal/usecase/face/query"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/tests/testutil"
	"github.com/Hiro-mackay/avatar-face/tests/testutil/mocks"
)

type faceHandlerTestDeps struct {
	profileRepo      *mocks.MockFaceProfileRepository
	uploadLogRepo    *mocks.MockUploadLogRepository
	assetStore       *mocks.MockAssetStore
	processingClient *mocks.MockProcessingClient
	publisher        *mocks.MockEventPublisher
	auditService     *mocks.MockAuditService
	userID           uuid.UUID
}

func newFaceHandlerTestDeps(t *testing.T) *faceHandlerTestDeps {
	t.Helper()
	return &faceHandlerTestDeps{
		profileRepo:      mocks.NewMockFaceProfileRepository(t),
		uploadLogRepo:    mocks.NewMockUploadLogRepository(t),
		assetStore:       mocks.NewMockAssetStore(t),
		processingClient: mocks.NewMockProcessingClient(t),
		publisher:        mocks.NewMockEventPublisher(t),
		auditService:     mocks.NewMockAuditService(t),
		userID:           uuid.New(),
	}
}

func (d *faceHandlerTestDeps) newServer(t *testing.T) *echo.Echo {
	t.Helper()

	checkQuota := faceqry.NewCheckQuotaQuery(d.profileRepo)
	h := handler.NewFaceHandler(
		facecmd.NewSubmitUploadCommand(checkQuota, d.profileRepo, d.uploadLogRepo, d.assetStore, d.processingClient),
		facecmd.NewRemoveFaceCommand(d.profileRepo, d.publisher),
		faceqry.NewGetFaceQuery(d.profileRepo),
		checkQuota,
		faceqry.NewListUploadLogsQuery(d.uploadLogRepo),
	)

	e := newTestEcho(t)
	g := e.Group("/api/v1/me/face", withAudit(d.auditService), asUser(d.userID))
	g.POST("", h.UploadFace)
	g.GET("", h.GetFace)
	g.DELETE("", h.RemoveFace)
	g.GET("/quota", h.GetQuota)
	g.GET("/uploads", h.ListUploadLogs)

	return e
}

func freshProfile(userID uuid.UUID) *entity.FaceProfile {
	now := time.Now()
	return entity.ReconstructFaceProfile(userID, nil, nil, 0, entity.FaceStateNone, nil, 0, now, now, now)
}

func approvedProfile(userID uuid.UUID, version int) *entity.FaceProfile {
	now := time.Now()
	path := "faces/" + userID.String() + "/3.png"
	url := "https://cdn.test/" + path
	meta := entity.NormalizeFaceMeta(nil)
	return entity.ReconstructFaceProfile(userID, &path, &url, version, entity.FaceStateApproved, &meta, 1, now, now, now)
}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return data
}

func TestFaceHandler_UploadFace_Success(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(freshProfile(deps.userID), nil)
	deps.assetStore.On("PutNew", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/png").Return(nil)
	deps.uploadLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.UploadLog")).Return(nil)
	deps.profileRepo.On("EnsureExists", mock.Anything, deps.userID, mock.AnythingOfType("time.Time")).Return(nil)
	deps.profileRepo.On("ClaimUploadSlot", mock.Anything, deps.userID, entity.DailyUploadLimit, mock.AnythingOfType("time.Time")).Return(true, nil)
	deps.processingClient.On("Process", mock.Anything, mock.MatchedBy(func(req service.ProcessRequest) bool {
		return req.UserID == deps.userID &&
			req.FaceMeta != nil &&
			req.FaceMeta.Scale != nil && *req.FaceMeta.Scale == 1.25 &&
			req.FaceMeta.Rotation == nil
	})).Return(&service.ProcessResult{
		FaceURL:     "https://cdn.test/faces/" + deps.userID.String() + "/1.png",
		FaceVersion: 1,
		State:       entity.FaceStateApproved,
		Meta:        entity.FaceMeta{Width: 512, Height: 512, Scale: 1.25},
	}, nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/api/v1/me/face",
		Multipart: &testutil.MultipartBody{
			Fields:      map[string]string{"scale": "1.25"},
			FileField:   "file",
			FileName:    "face.png",
			FileContent: pngBytes(1024),
			ContentType: "image/png",
		},
	})

	resp.AssertStatus(http.StatusCreated).
		AssertJSONPath("data.face_version", float64(1)).
		AssertJSONPath("data.state", "approved").
		AssertJSONPath("data.meta.scale", 1.25)
	assert.NotEmpty(t, resp.GetJSONData()["upload_id"])
}

func TestFaceHandler_UploadFace_MissingFile(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/api/v1/me/face",
		Multipart: &testutil.MultipartBody{
			Fields: map[string]string{"scale": "1"},
		},
	})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "file is required")
}

func TestFaceHandler_UploadFace_InvalidTransform(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/api/v1/me/face",
		Multipart: &testutil.MultipartBody{
			Fields:      map[string]string{"rotation": "sideways"},
			FileField:   "file",
			FileName:    "face.png",
			FileContent: pngBytes(64),
			ContentType: "image/png",
		},
	})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "validation failed")
	deps.processingClient.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestFaceHandler_UploadFace_UnsupportedType(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(freshProfile(deps.userID), nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/api/v1/me/face",
		Multipart: &testutil.MultipartBody{
			FileField:   "file",
			FileName:    "face.gif",
			FileContent: []byte("GIF89a"),
			ContentType: "image/gif",
		},
	})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "")
	deps.assetStore.AssertNotCalled(t, "PutNew", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.uploadLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFaceHandler_UploadFace_QuotaExhausted(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	profile := freshProfile(deps.userID)
	profile.UploadCountToday = entity.DailyUploadLimit
	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(profile, nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/api/v1/me/face",
		Multipart: &testutil.MultipartBody{
			FileField:   "file",
			FileName:    "face.png",
			FileContent: pngBytes(64),
			ContentType: "image/png",
		},
	})

	resp.AssertStatus(http.StatusTooManyRequests).AssertJSONError("QUOTA_EXCEEDED", "Daily upload limit reached")
}

func TestFaceHandler_UploadFace_ProcessingRejected(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(freshProfile(deps.userID), nil)
	deps.assetStore.On("PutNew", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/png").Return(nil)
	deps.uploadLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.UploadLog")).Return(nil)
	deps.profileRepo.On("EnsureExists", mock.Anything, deps.userID, mock.AnythingOfType("time.Time")).Return(nil)
	deps.profileRepo.On("ClaimUploadSlot", mock.Anything, deps.userID, entity.DailyUploadLimit, mock.AnythingOfType("time.Time")).Return(true, nil)
	deps.processingClient.On("Process", mock.Anything, mock.Anything).
		Return(nil, apperror.NewProcessingRejectedError(entity.ReasonDownloadFailed))

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/api/v1/me/face",
		Multipart: &testutil.MultipartBody{
			FileField:   "file",
			FileName:    "face.png",
			FileContent: pngBytes(64),
			ContentType: "image/png",
		},
	})

	resp.AssertStatus(http.StatusUnprocessableEntity).AssertJSONError("PROCESSING_REJECTED", "download failed")
}

func TestFaceHandler_GetFace_MissingProfileReturnsDefault(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(nil, apperror.NewNotFoundError("face profile"))

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodGet, Path: "/api/v1/me/face"})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("data.face_state", "none").
		AssertJSONPath("data.face_version", float64(0)).
		AssertJSONPath("data.face_url", nil)
}

func TestFaceHandler_GetFace_Approved(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(approvedProfile(deps.userID, 3), nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodGet, Path: "/api/v1/me/face"})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("data.face_state", "approved").
		AssertJSONPath("data.face_meta.width", float64(entity.FaceOutputSize))
	assert.Contains(t, resp.GetJSONData()["face_url"], "faces/"+deps.userID.String())
}

func TestFaceHandler_RemoveFace_AuditsRemoval(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(approvedProfile(deps.userID, 3), nil)
	deps.profileRepo.On("SaveState", mock.Anything, mock.AnythingOfType("*entity.FaceProfile"), entity.FaceStateApproved).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.AnythingOfType("service.FaceEvent")).Return(nil)
	deps.auditService.On("Log", mock.Anything, mock.MatchedBy(func(entry service.AuditEntry) bool {
		return entry.Action == entity.AuditActionFaceRemove &&
			entry.UserID != nil && *entry.UserID == deps.userID
	})).Return()

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodDelete, Path: "/api/v1/me/face"})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("data.removed", true).
		AssertJSONPath("data.face.face_state", "none").
		AssertJSONPath("data.face.face_version", float64(3))
}

func TestFaceHandler_RemoveFace_NothingToRemoveSkipsAudit(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(freshProfile(deps.userID), nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodDelete, Path: "/api/v1/me/face"})

	resp.AssertStatus(http.StatusOK).AssertJSONPath("data.removed", false)
	deps.auditService.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestFaceHandler_GetQuota(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	profile := freshProfile(deps.userID)
	profile.UploadCountToday = 2
	deps.profileRepo.On("FindByUserID", mock.Anything, deps.userID).Return(profile, nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodGet, Path: "/api/v1/me/face/quota"})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("data.allowed", true).
		AssertJSONPath("data.remaining", float64(1)).
		AssertJSONPath("data.limit", float64(entity.DailyUploadLimit))
}

func TestFaceHandler_ListUploadLogs_Paginates(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	log := entity.NewUploadLog(uuid.New(), deps.userID, "user-uploads/raw/x/y.png", 64, "image/png", time.Now())
	deps.uploadLogRepo.On("ListByUserID", mock.Anything, deps.userID, 10, 10).Return([]*entity.UploadLog{log}, nil)
	deps.uploadLogRepo.On("CountByUserID", mock.Anything, deps.userID).Return(11, nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodGet, Path: "/api/v1/me/face/uploads?page=2&per_page=10"})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("meta.pagination.page", float64(2)).
		AssertJSONPath("meta.pagination.total_items", float64(11)).
		AssertJSONPath("meta.pagination.has_next", false).
		AssertJSONPath("meta.pagination.has_prev", true)

	data, ok := resp.GetJSON()["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "pending", data[0].(map[string]interface{})["outcome"])
}

func TestFaceHandler_ListUploadLogs_RejectsOversizedPage(t *testing.T) {
	deps := newFaceHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{Method: http.MethodGet, Path: "/api/v1/me/face/uploads?per_page=500"})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "validation failed")
}
