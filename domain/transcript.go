package domain

import "time"

// TranscriptEntry is one normalized line of a conversation, derived
// from a Message. DisplayAuthor is empty when the author identity
// matched no participant and was not the concierge.
type TranscriptEntry struct {
	DisplayAuthor string
	Body          string
	At            time.Time
	Media         []MediaRef
}

// HasAuthor reports whether the author could be resolved to a name.
func (e TranscriptEntry) HasAuthor() bool {
	return e.DisplayAuthor != ""
}

// RenderedTranscript is the formatted document produced once per
// download request. FileStem is filesystem-safe and carries no extension.
type RenderedTranscript struct {
	Title    string
	Text     string
	FileStem string
}

// ArtifactKind discriminates the two download shapes.
type ArtifactKind int

const (
	ArtifactText ArtifactKind = iota
	ArtifactZip
)

// Artifact is the final downloadable blob handed to the sink.
// It is ephemeral and never cached.
type Artifact struct {
	Filename    string
	ContentType string
	Kind        ArtifactKind
	Data        []byte
}
