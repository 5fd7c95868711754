// Package projection builds transcript entries from conversation snapshots.
// Handles author resolution and ordering.
// Does not fetch media or interact with storage directly.
package projection

import (
	"chat-archive/domain"

	"github.com/samber/lo"
)

// Extract maps raw messages onto ordered transcript entries. Order and
// count of the input are preserved. Empty or nil inputs yield an empty
// result, never an error.
func Extract(messages []domain.Message, participants []domain.Participant) []domain.TranscriptEntry {
	if len(messages) == 0 {
		return nil
	}
	return lo.Map(messages, func(m domain.Message, _ int) domain.TranscriptEntry {
		return domain.TranscriptEntry{
			DisplayAuthor: resolveAuthor(m.AuthorIdentity, participants),
			Body:          m.Body,
			At:            m.At,
			Media:         m.Media,
		}
	})
}

// resolveAuthor applies the display-name rule: the concierge keeps its
// literal label, everyone else is looked up by exact identity. An
// unknown identity resolves to the empty string, which downstream
// rendering must tolerate.
func resolveAuthor(identity string, participants []domain.Participant) string {
	if identity == domain.ConciergeAuthor {
		return domain.ConciergeAuthor
	}
	p, found := lo.Find(participants, func(p domain.Participant) bool {
		return p.Identity == identity
	})
	if !found {
		return ""
	}
	return p.DisplayName
}
