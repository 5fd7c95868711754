package repositories

import (
	"log/slog"
	"testing"
	"time"

	"chat-archive/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) ConversationRepository {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewConversationRepository(db, logs.GetLoggerFromLevel(slog.LevelError))
}

func TestConversationRepository_MessagesComeBackChronological(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)
	at := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	// Stored out of order on purpose; the padded key must restore order
	req.NoError(repo.StoreMessage("conv-1", domain.Message{
		ID: uuid.New(), AuthorIdentity: "bob-2", Body: "second", At: at.Add(time.Minute),
	}))
	req.NoError(repo.StoreMessage("conv-1", domain.Message{
		ID: uuid.New(), AuthorIdentity: "alice-1", Body: "first", At: at,
	}))

	messages, err := repo.GetMessages("conv-1")

	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("first", messages[0].Body)
	req.Equal("second", messages[1].Body)
	req.Equal("alice-1", messages[0].AuthorIdentity)
}

func TestConversationRepository_ConversationsAreIsolated(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)
	at := time.Now()

	req.NoError(repo.StoreMessage("conv-1", domain.Message{ID: uuid.New(), AuthorIdentity: "a", Body: "mine", At: at}))
	req.NoError(repo.StoreMessage("conv-2", domain.Message{ID: uuid.New(), AuthorIdentity: "b", Body: "other", At: at}))

	messages, err := repo.GetMessages("conv-1")

	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("mine", messages[0].Body)
}

func TestConversationRepository_MediaRoundTrip(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	media := []domain.MediaRef{{Filename: "invoice.pdf", ContentType: "application/pdf", SizeBytes: 2048}}
	req.NoError(repo.StoreMessage("conv-1", domain.Message{
		ID: uuid.New(), AuthorIdentity: "alice-1", Body: "attached", At: time.Now(), Media: media,
	}))

	messages, err := repo.GetMessages("conv-1")

	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(media, messages[0].Media)
}

func TestConversationRepository_Participants(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	req.NoError(repo.StoreParticipant("conv-1", domain.Participant{Identity: "alice-1", DisplayName: "Alice"}))
	req.NoError(repo.StoreParticipant("conv-1", domain.Participant{Identity: "bob-2", DisplayName: "Bob"}))
	req.NoError(repo.StoreParticipant("conv-2", domain.Participant{Identity: "carol-3", DisplayName: "Carol"}))

	participants, err := repo.GetParticipants("conv-1")

	req.NoError(err)
	req.Len(participants, 2)
	req.ElementsMatch([]string{"Alice", "Bob"}, []string{participants[0].DisplayName, participants[1].DisplayName})
}

func TestConversationRepository_EmptyConversation(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t)

	messages, err := repo.GetMessages("missing")

	req.NoError(err)
	req.Empty(messages)
}
