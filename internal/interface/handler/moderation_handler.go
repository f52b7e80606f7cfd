package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/interface/dto/request"
	"github.com/Hiro-mackay/avatar-face/internal/interface/dto/response"
	"github.com/Hiro-mackay/avatar-face/internal/interface/middleware"
	"github.com/Hiro-mackay/avatar-face/internal/interface/presenter"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// ModerationHandler はオペレーター向けのモデレーションハンドラーです
type ModerationHandler struct {
	moderateFaceCommand *facecmd.ModerateFaceCommand
}

// NewModerationHandler は新しいModerationHandlerを作成します
func NewModerationHandler(moderateFaceCommand *facecmd.ModerateFaceCommand) *ModerationHandler {
	return &ModerationHandler{moderateFaceCommand: moderateFaceCommand}
}

// Moderate は顔画像を rejected か flagged にします
// @Summary 顔画像モデレーション（内部）
// @Tags Internal
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param userId path string true "ユーザーID"
// @Param body body request.ModerateFaceRequest true "モデレーション内容"
// @Success 200 {object} presenter.Response{data=response.ModerateFaceResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /internal/v1/face/{userId}/moderate [post]
func (h *ModerationHandler) Moderate(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return apperror.NewValidationError("invalid user ID", nil)
	}

	var req request.ModerateFaceRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.moderateFaceCommand.Execute(c.Request().Context(), facecmd.ModerateFaceInput{
		UserID: userID,
		State:  req.State,
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}

	middleware.AuditHelper(c, entity.AuditActionFaceModerate, entity.AuditResourceFaceProfile, &userID, map[string]interface{}{
		"state":          req.State,
		"previous_state": output.PreviousState.String(),
		"reason":         req.Reason,
	})

	return presenter.OK(c, response.ModerateFaceResponse{
		Face:          response.ToFaceResponse(output.Profile),
		PreviousState: output.PreviousState.String(),
	})
}
