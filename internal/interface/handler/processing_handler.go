package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/interface/dto/request"
	"github.com/Hiro-mackay/avatar-face/internal/interface/dto/response"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/pkg/logger"
)

// MaxProcessRequestSize は処理関数のリクエストボディ上限
const MaxProcessRequestSize = service.MaxUploadSize

// ProcessingHandler は処理関数の内部RPCハンドラーです
// エラーも {ok: false, error, code} の形で返します
type ProcessingHandler struct {
	processUploadCommand *facecmd.ProcessUploadCommand
}

// NewProcessingHandler は新しいProcessingHandlerを作成します
func NewProcessingHandler(processUploadCommand *facecmd.ProcessUploadCommand) *ProcessingHandler {
	return &ProcessingHandler{processUploadCommand: processUploadCommand}
}

// Process は未処理アップロードを検証し、配信用アセットとして確定させます
// @Summary 顔画像処理（内部）
// @Tags Internal
// @Accept json
// @Produce json
// @Security ServiceToken
// @Param body body request.ProcessFaceRequest true "処理対象"
// @Success 200 {object} response.ProcessFaceResponse
// @Failure 400 {object} response.ProcessFaceErrorResponse
// @Failure 409 {object} response.ProcessFaceErrorResponse
// @Failure 413 {object} response.ProcessFaceErrorResponse
// @Failure 422 {object} response.ProcessFaceErrorResponse
// @Failure 503 {object} response.ProcessFaceErrorResponse
// @Router /internal/v1/face/process [post]
func (h *ProcessingHandler) Process(c echo.Context) error {
	r := c.Request()
	r.Body = http.MaxBytesReader(c.Response(), r.Body, MaxProcessRequestSize)

	var req request.ProcessFaceRequest
	if err := c.Bind(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return c.JSON(http.StatusRequestEntityTooLarge, response.ProcessFaceErrorResponse{
				OK:    false,
				Error: "request body too large",
				Code:  string(apperror.CodeValidationError),
			})
		}
		return h.fail(c, apperror.NewInvalidRequestError("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return h.fail(c, err)
	}

	userID := uuid.MustParse(req.UserID)
	uploadID := uuid.MustParse(req.UploadID)

	ctx := logger.ContextWithUserID(r.Context(), req.UserID)
	ctx = logger.ContextWithUploadID(ctx, req.UploadID)

	output, err := h.processUploadCommand.Execute(ctx, facecmd.ProcessUploadInput{
		UserID:   userID,
		RawPath:  req.RawPath,
		UploadID: uploadID,
		FaceMeta: req.FaceMeta,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, response.ToProcessFaceResponse(output))
}

// fail はエラーを処理関数のレスポンス形式で返します
func (h *ProcessingHandler) fail(c echo.Context, err error) error {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.NewInternalError(err)
	}

	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request().Context(), "face processing failed",
			"code", string(appErr.Code),
			"error", appErr.Error(),
		)
	}

	return c.JSON(appErr.HTTPStatus, response.ProcessFaceErrorResponse{
		OK:    false,
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}
