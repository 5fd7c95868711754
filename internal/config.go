package internal

import "time"

type Config struct {
	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	OutputDir      string        `env:"OUTPUT_DIR,required=true"`
	MediaBaseURL   string        `env:"MEDIA_BASE_URL"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT,default=30s"`
	LogLevel       string        `env:"LOG_LEVEL,required=true"`
	ConversationID string        `env:"CONVERSATION_ID"`
}
