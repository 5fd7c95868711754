package errors

import "fmt"

var (
	ErrEmptyTranscript   = fmt.Errorf("transcript has no entries")
	ErrNoConversation    = fmt.Errorf("conversation not found")
	ErrMediaUnresolvable = fmt.Errorf("media url cannot be resolved")
)
