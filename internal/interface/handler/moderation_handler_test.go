package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/interface/handler"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/tests/testutil"
	"github.com/Hiro-mackay/avatar-face/tests/testutil/mocks"
)

func notFound(resource string) error {
	return apperror.NewNotFoundError(resource)
}

type moderationHandlerTestDeps struct {
	profileRepo  *mocks.MockFaceProfileRepository
	publisher    *mocks.MockEventPublisher
	auditService *mocks.MockAuditService
}

func newModerationHandlerTestDeps(t *testing.T) *moderationHandlerTestDeps {
	t.Helper()
	return &moderationHandlerTestDeps{
		profileRepo:  mocks.NewMockFaceProfileRepository(t),
		publisher:    mocks.NewMockEventPublisher(t),
		auditService: mocks.NewMockAuditService(t),
	}
}

func (d *moderationHandlerTestDeps) newServer(t *testing.T) *echo.Echo {
	t.Helper()

	h := handler.NewModerationHandler(facecmd.NewModerateFaceCommand(d.profileRepo, d.publisher))

	e := newTestEcho(t)
	e.POST("/internal/v1/face/:userId/moderate", h.Moderate, withAudit(d.auditService))
	return e
}

func TestModerationHandler_Moderate_FlagsApprovedFace(t *testing.T) {
	deps := newModerationHandlerTestDeps(t)
	e := deps.newServer(t)
	userID := uuid.New()

	deps.profileRepo.On("FindByUserID", mock.Anything, userID).Return(approvedProfile(userID, 4), nil)
	deps.profileRepo.On("SaveState", mock.Anything, mock.AnythingOfType("*entity.FaceProfile"), entity.FaceStateApproved).Return(nil)
	deps.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(ev service.FaceEvent) bool {
		return ev.Type == service.FaceEventFlagged && ev.Reason == "reported"
	})).Return(nil)
	deps.auditService.On("Log", mock.Anything, mock.MatchedBy(func(entry service.AuditEntry) bool {
		return entry.Action == entity.AuditActionFaceModerate &&
			entry.ResourceID != nil && *entry.ResourceID == userID &&
			entry.Details["previous_state"] == "approved"
	})).Return()

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/" + userID.String() + "/moderate",
		Body:   map[string]interface{}{"state": "flagged", "reason": "reported"},
	})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("data.face.face_state", "flagged").
		AssertJSONPath("data.face.face_url", nil).
		AssertJSONPath("data.previous_state", "approved")
}

func TestModerationHandler_Moderate_RejectsUnsupportedState(t *testing.T) {
	deps := newModerationHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/" + uuid.NewString() + "/moderate",
		Body:   map[string]interface{}{"state": "approved"},
	})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "validation failed")
	deps.profileRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestModerationHandler_Moderate_InvalidUserID(t *testing.T) {
	deps := newModerationHandlerTestDeps(t)
	e := deps.newServer(t)

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/not-a-uuid/moderate",
		Body:   map[string]interface{}{"state": "rejected"},
	})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "invalid user ID")
}

func TestModerationHandler_Moderate_MissingProfile(t *testing.T) {
	deps := newModerationHandlerTestDeps(t)
	e := deps.newServer(t)
	userID := uuid.New()

	deps.profileRepo.On("FindByUserID", mock.Anything, userID).Return(nil, notFound("face profile"))

	resp := testutil.DoRequest(t, e, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/internal/v1/face/" + userID.String() + "/moderate",
		Body:   map[string]interface{}{"state": "rejected"},
	})

	resp.AssertStatus(http.StatusNotFound).AssertJSONError("NOT_FOUND", "face profile not found")
	deps.auditService.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}
