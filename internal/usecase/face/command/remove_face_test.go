package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/avatar-face/internal/domain/entity"
	"github.com/Hiro-mackay/avatar-face/internal/domain/service"
	"github.com/Hiro-mackay/avatar-face/internal/usecase/face/command"
	"github.com/Hiro-mackay/avatar-face/pkg/apperror"
	"github.com/Hiro-mackay/avatar-face/tests/testutil/mocks"
)

func newApprovedProfile(userID uuid.UUID, version int) *entity.FaceProfile {
	now := time.Now()
	path := "faces/" + userID.String() + "/1.png"
	url := "https://cdn.test/" + path
	meta := entity.NormalizeFaceMeta(nil)
	return entity.ReconstructFaceProfile(
		userID, &path, &url, version, entity.FaceStateApproved, &meta, 1, now, now, now,
	)
}

func TestRemoveFaceCommand_Execute_ApprovedFace_ClearsAssetAndKeepsVersion(t *testing.T) {
	ctx := context.Background()
	profileRepo := mocks.NewMockFaceProfileRepository(t)
	publisher := mocks.NewMockEventPublisher(t)
	userID := uuid.New()

	profileRepo.On("FindByUserID", ctx, userID).Return(newApprovedProfile(userID, 4), nil)
	profileRepo.On("SaveState", ctx, mock.MatchedBy(func(p *entity.FaceProfile) bool {
		return p.FaceState == entity.FaceStateNone && p.FacePath == nil && p.FaceURL == nil
	}), entity.FaceStateApproved).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e service.FaceEvent) bool {
		return e.Type == service.FaceEventRemoved && e.FaceVersion == 4
	})).Return(nil)

	cmd := command.NewRemoveFaceCommand(profileRepo, publisher)
	output, err := cmd.Execute(ctx, command.RemoveFaceInput{UserID: userID})

	require.NoError(t, err)
	assert.True(t, output.Removed)
	assert.Equal(t, 4, output.Profile.FaceVersion)
	assert.Nil(t, output.Profile.FaceMeta)
}

func TestRemoveFaceCommand_Execute_MissingProfile_ReturnsDefaultWithoutWrite(t *testing.T) {
	ctx := context.Background()
	profileRepo := mocks.NewMockFaceProfileRepository(t)
	publisher := mocks.NewMockEventPublisher(t)
	userID := uuid.New()

	profileRepo.On("FindByUserID", ctx, userID).Return(nil, apperror.NewNotFoundError("face profile"))

	cmd := command.NewRemoveFaceCommand(profileRepo, publisher)
	output, err := cmd.Execute(ctx, command.RemoveFaceInput{UserID: userID})

	require.NoError(t, err)
	assert.False(t, output.Removed)
	assert.Equal(t, entity.FaceStateNone, output.Profile.FaceState)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRemoveFaceCommand_Execute_ConcurrentChange_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	profileRepo := mocks.NewMockFaceProfileRepository(t)
	publisher := mocks.NewMockEventPublisher(t)
	userID := uuid.New()

	profileRepo.On("FindByUserID", ctx, userID).Return(newApprovedProfile(userID, 1), nil)
	profileRepo.On("SaveState", ctx, mock.AnythingOfType("*entity.FaceProfile"), entity.FaceStateApproved).
		Return(apperror.NewConflictError("face state changed concurrently"))

	cmd := command.NewRemoveFaceCommand(profileRepo, publisher)
	output, err := cmd.Execute(ctx, command.RemoveFaceInput{UserID: userID})

	assert.Nil(t, output)
	assert.True(t, apperror.IsConflict(err))
}
