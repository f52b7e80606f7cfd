package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/interface/dto/request"
	"github.com/Hiro-mackay/avatar-face/internal/interface/dto/response"
	"github.com/Hiro-mackay/avatar-face/internal/interface/middleware"
	"github.com/Hiro-mackay/avatar-face/internal/interface/presenter"
	facecmd "github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	faceqry "github.com/Hiro-mackay/avatar-face/internal/usecase/face/query"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// FaceHandler は利用者向けの顔画像関連HTTPハンドラーです
type FaceHandler struct {
	// Commands
	submitUploadCommand *facecmd.SubmitUploadCommand
	removeFaceCommand   *facecmd.RemoveFaceCommand

	// Queries
	getFaceQuery        *faceqry.GetFaceQuery
	checkQuotaQuery     *faceqry.CheckQuotaQuery
	listUploadLogsQuery *faceqry.ListUploadLogsQuery
}

// NewFaceHandler は新しいFaceHandlerを作成します
func NewFaceHandler(
	submitUploadCommand *facecmd.SubmitUploadCommand,
	removeFaceCommand *facecmd.RemoveFaceCommand,
	getFaceQuery *faceqry.GetFaceQuery,
	checkQuotaQuery *faceqry.CheckQuotaQuery,
	listUploadLogsQuery *faceqry.ListUploadLogsQuery,
) *FaceHandler {
	return &FaceHandler{
		submitUploadCommand: submitUploadCommand,
		removeFaceCommand:   removeFaceCommand,
		getFaceQuery:        getFaceQuery,
		checkQuotaQuery:     checkQuotaQuery,
		listUploadLogsQuery: listUploadLogsQuery,
	}
}

// UploadFace は顔画像をアップロードし、処理済みアセットのURLを返します
// @Summary 顔画像アップロード
// @Description 合成済みの顔画像を受け付け、検証・保存して配信URLを返します
// @Tags Face
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "顔画像（JPEG/PNG/WebP、5MB以下）"
// @Param scale formData number false "拡大率"
// @Param rotation formData number false "回転角（度）"
// @Param offset_x formData number false "X方向オフセット"
// @Param offset_y formData number false "Y方向オフセット"
// @Success 201 {object} presenter.Response{data=response.UploadFaceResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /me/face [post]
func (h *FaceHandler) UploadFace(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("invalid token")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperror.NewValidationError("file is required", []apperror.FieldError{
			{Field: "file", Message: "this field is required"},
		})
	}

	req, err := bindUploadFaceRequest(c)
	if err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	data, err := readUploadedFile(fileHeader)
	if err != nil {
		return apperror.NewInvalidRequestError("failed to read uploaded file")
	}

	output, err := h.submitUploadCommand.Execute(c.Request().Context(), facecmd.SubmitUploadInput{
		UserID:   userID,
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		FileSize: fileHeader.Size,
		Data:     data,
		FaceMeta: req.Transform(),
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToUploadFaceResponse(output))
}

// GetFace は現在の顔画像プロファイルを取得します
// @Summary 顔画像取得
// @Tags Face
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=response.FaceResponse}
// @Failure 401 {object} middleware.ErrorResponse
// @Router /me/face [get]
func (h *FaceHandler) GetFace(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("invalid token")
	}

	output, err := h.getFaceQuery.Execute(c.Request().Context(), faceqry.GetFaceInput{UserID: userID})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToFaceResponse(output.Profile))
}

// RemoveFace は顔画像を外し、既定の頭部に戻します
// @Summary 顔画像削除
// @Tags Face
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=response.RemoveFaceResponse}
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /me/face [delete]
func (h *FaceHandler) RemoveFace(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("invalid token")
	}

	output, err := h.removeFaceCommand.Execute(c.Request().Context(), facecmd.RemoveFaceInput{UserID: userID})
	if err != nil {
		return err
	}

	if output.Removed {
		middleware.AuditHelper(c, entity.AuditActionFaceRemove, entity.AuditResourceFaceProfile, &userID, map[string]interface{}{
			"face_version": output.Profile.FaceVersion,
		})
	}

	return presenter.OK(c, response.RemoveFaceResponse{
		Face:    response.ToFaceResponse(output.Profile),
		Removed: output.Removed,
	})
}

// GetQuota は現在のアップロード枠を取得します
// @Summary アップロード枠取得
// @Tags Face
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response{data=response.QuotaResponse}
// @Failure 401 {object} middleware.ErrorResponse
// @Router /me/face/quota [get]
func (h *FaceHandler) GetQuota(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("invalid token")
	}

	output, err := h.checkQuotaQuery.Execute(c.Request().Context(), faceqry.CheckQuotaInput{UserID: userID})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToQuotaResponse(output))
}

// ListUploadLogs は自分のアップロード履歴を取得します
// @Summary アップロード履歴取得
// @Tags Face
// @Produce json
// @Security BearerAuth
// @Param page query int false "ページ番号"
// @Param per_page query int false "1ページあたりの件数"
// @Success 200 {object} presenter.Response{data=[]response.UploadLogResponse}
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /me/face/uploads [get]
func (h *FaceHandler) ListUploadLogs(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("invalid token")
	}

	var req request.ListUploadLogsRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid query parameters", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, perPage := presenter.NormalizePagination(req.Page, req.PerPage)

	output, err := h.listUploadLogsQuery.Execute(c.Request().Context(), faceqry.ListUploadLogsInput{
		UserID: userID,
		Limit:  perPage,
		Offset: presenter.Offset(page, perPage),
	})
	if err != nil {
		return err
	}

	return presenter.List(c, response.ToUploadLogListResponse(output.Logs), presenter.NewPagination(page, perPage, output.Total))
}

// bindUploadFaceRequest はフォーム値から変形パラメータを読み取ります
func bindUploadFaceRequest(c echo.Context) (request.UploadFaceRequest, error) {
	var req request.UploadFaceRequest
	var details []apperror.FieldError

	fields := []struct {
		name string
		dst  **float64
	}{
		{"scale", &req.Scale},
		{"rotation", &req.Rotation},
		{"offset_x", &req.OffsetX},
		{"offset_y", &req.OffsetY},
	}
	for _, f := range fields {
		raw := c.FormValue(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			details = append(details, apperror.FieldError{Field: f.name, Message: "must be a number"})
			continue
		}
		*f.dst = &v
	}

	if len(details) > 0 {
		return req, apperror.NewValidationError("validation failed", details)
	}
	return req, nil
}

// readUploadedFile はアップロードファイルを読み込みます
// 上限を1バイト超えた分まで読み、サイズ判定はユースケース側に任せます
func readUploadedFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
}
