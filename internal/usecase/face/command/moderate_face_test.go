package command_test

import (
	"context"
	"testing"

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

func TestModerateFaceCommand_Execute_FlagApprovedFace(t *testing.T) {
	ctx := context.Background()
	profileRepo := mocks.NewMockFaceProfileRepository(t)
	publisher := mocks.NewMockEventPublisher(t)
	userID := uuid.New()

	profileRepo.On("FindByUserID", ctx, userID).Return(newApprovedProfile(userID, 2), nil)
	profileRepo.On("SaveState", ctx, mock.MatchedBy(func(p *entity.FaceProfile) bool {
		return p.FaceState == entity.FaceStateFlagged && p.FaceURL == nil
	}), entity.FaceStateApproved).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e service.FaceEvent) bool {
		return e.Type == service.FaceEventFlagged && e.Reason == "reported by players"
	})).Return(nil)

	cmd := command.NewModerateFaceCommand(profileRepo, publisher)
	output, err := cmd.Execute(ctx, command.ModerateFaceInput{
		UserID: userID,
		State:  "flagged",
		Reason: "reported by players",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.FaceStateApproved, output.PreviousState)
	assert.Equal(t, entity.FaceStateFlagged, output.Profile.FaceState)
	assert.Equal(t, 2, output.Profile.FaceVersion)
}

func TestModerateFaceCommand_Execute_UnsupportedState_ReturnsValidationError(t *testing.T) {
	for _, state := range []string{"approved", "none", "pending", "banned"} {
		t.Run(state, func(t *testing.T) {
			ctx := context.Background()
			profileRepo := mocks.NewMockFaceProfileRepository(t)
			publisher := mocks.NewMockEventPublisher(t)

			cmd := command.NewModerateFaceCommand(profileRepo, publisher)
			output, err := cmd.Execute(ctx, command.ModerateFaceInput{UserID: uuid.New(), State: state})

			assert.Nil(t, output)
			assert.Equal(t, apperror.CodeValidationError, apperror.CodeOf(err))
		})
	}
}

func TestModerateFaceCommand_Execute_RejectedFace_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	profileRepo := mocks.NewMockFaceProfileRepository(t)
	publisher := mocks.NewMockEventPublisher(t)
	userID := uuid.New()
	profile := newApprovedProfile(userID, 1)
	require.NoError(t, profile.Reject(profile.UpdatedAt))

	profileRepo.On("FindByUserID", ctx, userID).Return(profile, nil)

	cmd := command.NewModerateFaceCommand(profileRepo, publisher)
	output, err := cmd.Execute(ctx, command.ModerateFaceInput{UserID: userID, State: "flagged"})

	assert.Nil(t, output)
	assert.True(t, apperror.IsConflict(err))
	profileRepo.AssertNotCalled(t, "SaveState", mock.Anything, mock.Anything, mock.Anything)
}
