package services

import (
	"context"
	"fmt"
	"log/slog"

	"chat-archive/archive"
	"chat-archive/contract"
	"chat-archive/domain"
	"chat-archive/projection"
	"chat-archive/transcript"

	"github.com/go-playground/validator/v10"
)

// ArchiveRequest is a read-only snapshot of one conversation taken at
// invocation time.
type ArchiveRequest struct {
	Messages     []domain.Message `validate:"required,min=1"`
	Participants []domain.Participant
}

// TranscriptService runs the extract, render, package pipeline and
// hands the artifact to the download sink. Every invocation builds the
// transcript from scratch; nothing is cached between requests.
type TranscriptService struct {
	log      *slog.Logger
	packager *archive.Packager
	sink     contract.DownloadSink
	validate *validator.Validate
}

func NewTranscriptService(log *slog.Logger, packager *archive.Packager, sink contract.DownloadSink) *TranscriptService {
	return &TranscriptService{
		log:      log,
		packager: packager,
		sink:     sink,
		validate: validator.New(),
	}
}

// DownloadTranscript builds the artifact and hands it to the sink.
// The sink call is fire-and-forget: its failure is logged and the
// artifact is still returned to the caller.
func (s *TranscriptService) DownloadTranscript(ctx context.Context, req ArchiveRequest) (domain.Artifact, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Artifact{}, fmt.Errorf("invalid archive request: %w", err)
	}

	entries := projection.Extract(req.Messages, req.Participants)
	rendered, err := transcript.Render(entries)
	if err != nil {
		return domain.Artifact{}, err
	}

	artifact, err := s.packager.Package(ctx, rendered, collectMedia(req.Messages))
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("packaging transcript: %w", err)
	}

	if err := s.sink.Save(ctx, artifact); err != nil {
		s.log.Error("Download sink failed", "filename", artifact.Filename, "error", err)
	}
	s.log.Info("Transcript packaged", "title", rendered.Title, "filename", artifact.Filename)
	return artifact, nil
}

// EmailTranscript is an interface hook with no behavior yet. It
// accepts the same snapshot as a download and reports success without
// sending anything.
func (s *TranscriptService) EmailTranscript(_ context.Context, req ArchiveRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid archive request: %w", err)
	}
	s.log.Info("Email transcript requested, not implemented", "messages", len(req.Messages))
	return nil
}

// collectMedia flattens attachments across messages in message order.
func collectMedia(messages []domain.Message) []domain.MediaRef {
	var refs []domain.MediaRef
	for _, m := range messages {
		refs = append(refs, m.Media...)
	}
	return refs
}
