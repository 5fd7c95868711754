package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"chat-archive/archive"
	pipeerrors "chat-archive/errors"
	"chat-archive/infrastructure/media"
	"chat-archive/internal"
	"chat-archive/repositories"
	"chat-archive/services"
	"chat-archive/sink"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the archiver binary.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Archiver error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and centralizes error reporting, so
// deferred cleanup (database close) executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	conversationID := flag.String("conversation", config.ConversationID, "conversation to archive")
	flag.Parse()
	if *conversationID == "" {
		return exitConfig, fmt.Errorf("no conversation id provided")
	}

	// 2. Database (BadgerDB, read-only snapshot)
	// BypassLockGuard allows opening while the chat host holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Load the conversation snapshot
	repository := repositories.NewConversationRepository(db, log)
	messages, err := repository.GetMessages(*conversationID)
	if err != nil {
		return exitRuntime, fmt.Errorf("loading messages: %w", err)
	}
	if len(messages) == 0 {
		return exitRuntime, fmt.Errorf("%w: %s", pipeerrors.ErrNoConversation, *conversationID)
	}
	participants, err := repository.GetParticipants(*conversationID)
	if err != nil {
		return exitRuntime, fmt.Errorf("loading participants: %w", err)
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Pipeline wiring
	fetcher := media.NewHTTPFetcher(log, config.FetchTimeout)
	resolver := media.NewBaseURLResolver(config.MediaBaseURL)
	packager := archive.NewPackager(log, resolver, fetcher)
	service := services.NewTranscriptService(log, packager, sink.NewDiskSink(config.OutputDir, log))

	artifact, err := service.DownloadTranscript(ctx, services.ArchiveRequest{
		Messages:     messages,
		Participants: participants,
	})
	if err != nil {
		return exitRuntime, fmt.Errorf("archiving conversation: %w", err)
	}

	color.Green.Printf("Transcript saved: %s (%d bytes)\n",
		filepath.Join(config.OutputDir, artifact.Filename), len(artifact.Data))
	return exitOK, nil
}
