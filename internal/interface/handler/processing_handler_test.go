package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/valueobject"
	"github.com/Hiro-mackay/avatar-face/internal/interface/handler"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	"github.com/Hiro-mackay/avatar-face/tests/testutil"
	"github.com/Hiro-mackay/avatar-face/tests/testutil/mocks"
)

type processingHandlerTestDeps struct {
	profileRepo   *mocks.MockFaceProfileRepository
	uploadLogRepo *mocks.MockUploadLogRepository
	assetStore    *mocks.MockAssetStore
	lock          *mocks.MockProcessingLock
	publisher     *mocks.MockEventPublisher
	txManager     *mocks.MockTransactionManager
}

func newProcessingHandlerTestDeps(t *testing.T) *processingHandlerTestDeps {
	t.Helper()
	return &processingHandlerTestDeps{
		profileRepo:   mocks.NewMockFaceProfileRepository(t),
		uploadLogRepo: mocks.NewMockUploadLogRepository(t),
		assetStore:    mocks.NewMockAssetStore(t),
		lock:          mocks.NewMockProcessingLock(t),
		publisher:     mocks.NewMockEventPublisher(t),
		txManager:     mocks.NewMockTransactionManager(t),
	}
}

func (d *processingHandlerTestDeps) newServer(t *testing.T) *echo.Echo {
	t.Helper()

	h := handler.NewProcessingHandler(facecmd.NewProcessUploadCommand(
		d.profileRepo, d.uploadLogRepo, d.assetStore, d.lock, d.publisher, d.txManager,
	))

	e := newTestEcho(t)
	e.POST("/internal/v1/face/process", h.Process)
	return e
}

func processBody(log *entity.UploadLog) map[string]interface{} {
	return map[string]interface{}{
		"user_id":   log.UserID.String(),
		"raw_path":  log.RawPath,
		"upload_id": log.UploadID.String(),
	}
}

func newHandlerUploadLog(userID uuid.UUID) *entity.UploadLog {
	uploadID := uuid.New()
	return entity.NewUploadLog(uploadID, userID, valueobject.RawUploadPath(userID, uploadID, "png"), 64, "image/png", time.Now())
}

func TestProcessingHandler_Process_AcceptedReplay(t *testing.T) {
	deps := newProcessingHandlerTestDeps(t)
	e := deps.newServer(t)

	userID := uuid.New()
	log := newHandlerUploadLog(userID)
	processedPath := valueobject.ProcessedAssetPath(userID, 2, "png")
	require.NoError(t, log.Accept(processedPath, 64, "image/png", time.Now()))

	deps.uploadLogRepo.On("FindByUploadID", mock.Anything, log.UploadID).Return(log, nil)
	deps.profileRepo.On("FindByUserID", mock.Anything, userID).Return(approvedProfile(userID, 2), nil)
	deps.assetStore.On("PublicURL", processedPath).Return("https://cdn.test/" + processedPath)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/process",
		Body:   processBody(log),
	})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("ok", true).
		AssertJSONPath("face_version", float64(2)).
		AssertJSONPath("state", "approved").
		AssertJSONPath("face_url", "https://cdn.test/"+processedPath)
	deps.profileRepo.AssertNotCalled(t, "CommitApproved", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessingHandler_Process_RejectedUploadReturnsOkFalse(t *testing.T) {
	deps := newProcessingHandlerTestDeps(t)
	e := deps.newServer(t)

	log := newHandlerUploadLog(uuid.New())
	require.NoError(t, log.Reject(entity.ReasonDownloadFailed, time.Now()))
	deps.uploadLogRepo.On("FindByUploadID", mock.Anything, log.UploadID).Return(log, nil)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/process",
		Body:   processBody(log),
	})

	resp.AssertStatus(http.StatusUnprocessableEntity).
		AssertJSONPath("ok", false).
		AssertJSONPath("error", "download failed").
		AssertJSONPath("code", "PROCESSING_REJECTED")
}

func TestProcessingHandler_Process_InvalidBody(t *testing.T) {
	deps := newProcessingHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/process",
		Body:   map[string]interface{}{"user_id": "not-a-uuid", "raw_path": "x"},
	})

	resp.AssertStatus(http.StatusBadRequest).
		AssertJSONPath("ok", false).
		AssertJSONPath("code", "VALIDATION_ERROR")
}

func TestProcessingHandler_Process_BodyTooLarge(t *testing.T) {
	deps := newProcessingHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/process",
		Body: map[string]interface{}{
			"user_id":   uuid.NewString(),
			"raw_path":  strings.Repeat("a", int(handler.MaxProcessRequestSize)+1),
			"upload_id": uuid.NewString(),
		},
	})

	resp.AssertStatus(http.StatusRequestEntityTooLarge).AssertJSONPath("ok", false)
}

func TestProcessingHandler_Process_UnknownUpload(t *testing.T) {
	deps := newProcessingHandlerTestDeps(t)
	e := deps.newServer(t)

	log := newHandlerUploadLog(uuid.New())
	deps.uploadLogRepo.On("FindByUploadID", mock.Anything, log.UploadID).Return(nil, notFound("upload log"))

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/process",
		Body:   processBody(log),
	})

	resp.AssertStatus(http.StatusNotFound).AssertJSONPath("code", "NOT_FOUND")
	assert.Equal(t, false, resp.GetJSON()["ok"])
}
