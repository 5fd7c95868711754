package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"chat-archive/archive"
	"chat-archive/domain"
	pipeerrors "chat-archive/errors"
	"chat-archive/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fixtureRequest() ArchiveRequest {
	at := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	return ArchiveRequest{
		Messages: []domain.Message{
			{AuthorIdentity: "alice-1", Body: "Hello", At: at},
			{AuthorIdentity: "bob-2", Body: "Hi", At: at.Add(time.Minute)},
		},
		Participants: []domain.Participant{
			{Identity: "alice-1", DisplayName: "Alice"},
			{Identity: "bob-2", DisplayName: "Bob"},
		},
	}
}

func newService(t *testing.T, sink *mocks.MockDownloadSink) *TranscriptService {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelError)
	ctrl := gomock.NewController(t)
	packager := archive.NewPackager(log, mocks.NewMockMediaResolver(ctrl), mocks.NewMockMediaFetcher(ctrl))
	return NewTranscriptService(log, packager, sink)
}

func TestDownloadTranscript_HandsArtifactToSink(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	downloadSink := mocks.NewMockDownloadSink(ctrl)

	var saved domain.Artifact
	downloadSink.EXPECT().Save(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, artifact domain.Artifact) {
			saved = artifact
		}).Return(nil).Times(1)

	service := newService(t, downloadSink)
	artifact, err := service.DownloadTranscript(context.Background(), fixtureRequest())

	req.NoError(err)
	req.Equal("chat-with-alice-and-bob-14-march-2026.txt", artifact.Filename)
	req.Equal(artifact, saved)
	req.Contains(string(artifact.Data), "Conversation with Alice and Bob")
}

func TestDownloadTranscript_SinkFailureIsFireAndForget(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	downloadSink := mocks.NewMockDownloadSink(ctrl)
	downloadSink.EXPECT().Save(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("disk full")).Times(1)

	service := newService(t, downloadSink)
	artifact, err := service.DownloadTranscript(context.Background(), fixtureRequest())

	req.NoError(err)
	req.NotEmpty(artifact.Data)
}

func TestDownloadTranscript_EmptySnapshotRejected(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newService(t, mocks.NewMockDownloadSink(ctrl))
	_, err := service.DownloadTranscript(context.Background(), ArchiveRequest{})

	req.Error(err)
}

func TestDownloadTranscript_RenderPreconditionSurfaces(t *testing.T) {
	// A message list that extracts to zero entries cannot happen (one
	// entry per message), so the precondition only trips via Render on
	// an empty entry list. Exercise it directly through the request
	// validation boundary instead.
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newService(t, mocks.NewMockDownloadSink(ctrl))
	_, err := service.DownloadTranscript(context.Background(), ArchiveRequest{
		Messages: []domain.Message{},
	})

	req.Error(err)
	req.NotErrorIs(err, pipeerrors.ErrNoConversation)
}

func TestEmailTranscript_IsAStub(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The sink must never be touched by the email path
	service := newService(t, mocks.NewMockDownloadSink(ctrl))

	req.NoError(service.EmailTranscript(context.Background(), fixtureRequest()))
	req.Error(service.EmailTranscript(context.Background(), ArchiveRequest{}))
}
