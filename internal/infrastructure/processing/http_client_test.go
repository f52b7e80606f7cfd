package processing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
)

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) GenerateServiceToken(string) (string, error) {
	return s.token, s.err
}

func newProcessRequest() service.ProcessRequest {
	scale := 1.25
	return service.ProcessRequest{
		UserID:   uuid.New(),
		RawPath:  "user-uploads/raw/u/a.png",
		UploadID: uuid.New(),
		FaceMeta: &entity.FaceTransform{Scale: &scale},
	}
}

func TestHTTPClient_Process_Success(t *testing.T) {
	req := newProcessRequest()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, req.UserID.String(), body["user_id"])
		assert.Equal(t, req.RawPath, body["raw_path"])
		assert.Equal(t, req.UploadID.String(), body["upload_id"])
		assert.Equal(t, 1.25, body["face_meta"].(map[string]any)["scale"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"face_url":"https://cdn.test/faces/u/1.png","face_version":1,"state":"approved",
			"meta":{"width":512,"height":512,"scale":1.25,"rotation":0,"offsetX":0,"offsetY":0}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, stubIssuer{token: "svc-token"}, 5*time.Second)
	result, err := client.Process(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/faces/u/1.png", result.FaceURL)
	assert.Equal(t, 1, result.FaceVersion)
	assert.Equal(t, entity.FaceStateApproved, result.State)
	assert.Equal(t, 1.25, result.Meta.Scale)
	assert.Equal(t, 512, result.Meta.Width)
}

func TestHTTPClient_Process_RemoteErrorKeepsCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ok":false,"error":"Invalid file type. Allowed: jpeg, jpg, png, webp","code":"PROCESSING_REJECTED"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, stubIssuer{token: "t"}, 5*time.Second)
	result, err := client.Process(context.Background(), newProcessRequest())

	assert.Nil(t, result)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeProcessingRejected, appErr.Code)
	assert.Equal(t, service.ReasonInvalidFileType, appErr.Message)
}

func TestHTTPClient_Process_NonJSONResponse_ReturnsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream connect error"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, stubIssuer{token: "t"}, 5*time.Second)
	_, err := client.Process(context.Background(), newProcessRequest())

	assert.Equal(t, apperror.CodeProcessingUnavailable, apperror.CodeOf(err))
}

func TestHTTPClient_Process_Unreachable_ReturnsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewHTTPClient(endpoint, stubIssuer{token: "t"}, time.Second)
	_, err := client.Process(context.Background(), newProcessRequest())

	assert.Equal(t, apperror.CodeProcessingUnavailable, apperror.CodeOf(err))
}

func TestHTTPClient_Process_TokenFailure_ReturnsInternal(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", stubIssuer{err: errors.New("no key")}, time.Second)
	_, err := client.Process(context.Background(), newProcessRequest())

	assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
}
