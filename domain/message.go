// Package domain contains core concepts of the transcript pipeline.
// This file defines conversation Message records and related rules.
// Messages are immutable snapshots supplied by the caller.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConciergeAuthor is the reserved author identity used by automated
// concierge messages. It never appears in the participant list.
const ConciergeAuthor = "Concierge"

// Message represents one immutable conversation message.
// Insertion order is chronological order.
type Message struct {
	ID             uuid.UUID
	AuthorIdentity string
	Body           string
	At             time.Time
	Media          []MediaRef
}
