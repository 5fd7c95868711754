// Package domain contains core concepts of the transcript pipeline.
// This file defines Participant records.
// No runtime, network, or UI logic should be added here.
package domain

// Participant maps a stable identity to the name shown in transcripts.
type Participant struct {
	Identity    string `validate:"required"`
	DisplayName string `validate:"required"`
}
