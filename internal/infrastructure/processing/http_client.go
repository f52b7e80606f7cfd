package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

// ServiceName はサービストークンに記録する呼び出し元名
const ServiceName = "upload-orchestrator"

// maxResponseSize はレスポンスボディの読み取り上限
const maxResponseSize = 1 << 20

// TokenIssuer はサービストークンを発行します
type TokenIssuer interface {
	GenerateServiceToken(service string) (string, error)
}

// HTTPClient は処理関数をHTTP経由で呼び出すクライアントです
type HTTPClient struct {
	endpoint    string
	tokenIssuer TokenIssuer
	httpClient  *http.Client
}

// NewHTTPClient は新しいHTTPClientを作成します
func NewHTTPClient(endpoint string, tokenIssuer TokenIssuer, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint:    endpoint,
		tokenIssuer: tokenIssuer,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// processRequestBody は処理関数へのリクエストボディです
type processRequestBody struct {
	UserID   uuid.UUID             `json:"user_id"`
	RawPath  string                `json:"raw_path"`
	UploadID uuid.UUID             `json:"upload_id"`
	FaceMeta *entity.FaceTransform `json:"face_meta,omitempty"`
}

// processResponseBody は処理関数のレスポンスボディです
type processResponseBody struct {
	OK          bool             `json:"ok"`
	FaceURL     string           `json:"face_url"`
	FaceVersion int              `json:"face_version"`
	State       string           `json:"state"`
	Meta        *entity.FaceMeta `json:"meta"`
	Error       string           `json:"error"`
	Code        string           `json:"code"`
}

// Process は処理関数を呼び出します
// 処理関数が返したエラーはコードを保ったまま返し、通信失敗はPROCESSING_UNAVAILABLEにします
func (c *HTTPClient) Process(ctx context.Context, req service.ProcessRequest) (*service.ProcessResult, error) {
	body, err := json.Marshal(processRequestBody{
		UserID:   req.UserID,
		RawPath:  req.RawPath,
		UploadID: req.UploadID,
		FaceMeta: req.FaceMeta,
	})
	if err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("failed to encode process request: %w", err))
	}

	token, err := c.tokenIssuer.GenerateServiceToken(ServiceName)
	if err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("failed to issue service token: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperror.NewProcessingUnavailableError("processing function unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, apperror.NewProcessingUnavailableError("failed to read processing response", err)
	}

	var result processResponseBody
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperror.NewProcessingUnavailableError(
			fmt.Sprintf("unexpected processing response: status=%d", resp.StatusCode), err)
	}

	if !result.OK || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Code == "" {
			return nil, apperror.NewProcessingUnavailableError(
				fmt.Sprintf("processing function failed: status=%d", resp.StatusCode), nil)
		}
		return nil, apperror.FromCode(apperror.ErrorCode(result.Code), result.Error)
	}

	state, err := entity.ParseFaceState(result.State)
	if err != nil {
		return nil, apperror.NewProcessingUnavailableError("invalid state in processing response", err)
	}

	meta := entity.NormalizeFaceMeta(nil)
	if result.Meta != nil {
		meta = *result.Meta
	}

	return &service.ProcessResult{
		FaceURL:     result.FaceURL,
		FaceVersion: result.FaceVersion,
		State:       state,
		Meta:        meta,
	}, nil
}

var _ service.ProcessingClient = (*HTTPClient)(nil)
