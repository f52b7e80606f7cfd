package command

import (
	"context"

	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
)

// LocalProcessingClient は処理関数を同一プロセス内で呼び出すクライアントです
// PROCESSING_MODE=local で使います
type LocalProcessingClient struct {
	process *ProcessUploadCommand
}

// NewLocalProcessingClient は新しいLocalProcessingClientを作成します
func NewLocalProcessingClient(process *ProcessUploadCommand) *LocalProcessingClient {
	return &LocalProcessingClient{process: process}
}

// Process は処理関数を実行します
func (c *LocalProcessingClient) Process(ctx context.Context, req service.ProcessRequest) (*service.ProcessResult, error) {
	output, err := c.process.Execute(ctx, ProcessUploadInput{
		UserID:   req.UserID,
		RawPath:  req.RawPath,
		UploadID: req.UploadID,
		FaceMeta: req.FaceMeta,
	})
	if err != nil {
		return nil, err
	}

	return &service.ProcessResult{
		FaceURL:     output.FaceURL,
		FaceVersion: output.FaceVersion,
		State:       output.State,
		Meta:        output.Meta,
	}, nil
}

var _ service.ProcessingClient = (*LocalProcessingClient)(nil)
