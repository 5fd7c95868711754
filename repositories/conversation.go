package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"chat-archive/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IConversationRepository interface {
	StoreMessage(conversationID string, message domain.Message) error
	StoreParticipant(conversationID string, participant domain.Participant) error
	GetMessages(conversationID string) ([]domain.Message, error)
	GetParticipants(conversationID string) ([]domain.Participant, error)
}

// ConversationRepository persists conversation snapshots in BadgerDB
// for the host binary. The archival pipeline itself never touches it;
// it only receives the read-only slices loaded here.
type ConversationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewConversationRepository(db *badger.DB, log *slog.Logger) ConversationRepository {
	return ConversationRepository{db: db, log: log}
}

type diskMessage struct {
	ID     uuid.UUID         `json:"id"`
	Author string            `json:"author"`
	Body   string            `json:"body"`
	At     time.Time         `json:"at"`
	Media  []domain.MediaRef `json:"media,omitempty"`
}

type diskParticipant struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
}

// StoreMessage persists a message under "msg:{conversation}:{timestamp_padded}:{uuid}".
// The 19-digit zero padding keeps lexicographical order equal to
// chronological order; the UUID disambiguates same-nanosecond arrivals.
func (r ConversationRepository) StoreMessage(conversationID string, message domain.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%s", conversationID, message.At.UnixNano(), message.ID)
	value, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (r ConversationRepository) StoreParticipant(conversationID string, participant domain.Participant) error {
	key := fmt.Sprintf("participant:%s:%s", conversationID, participant.Identity)
	value, err := json.Marshal(diskParticipant{
		Identity:    participant.Identity,
		DisplayName: participant.DisplayName,
	})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// GetMessages scans one conversation's prefix. Thanks to the padded
// timestamp in the key, the iteration order is already chronological.
func (r ConversationRepository) GetMessages(conversationID string) ([]domain.Message, error) {
	var raw [][]byte
	prefix := []byte(fmt.Sprintf("msg:%s:", conversationID))
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var m diskMessage
		if err = json.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		messages = append(messages, toMessage(m))
	}
	r.log.Debug("Messages loaded", "conversation", conversationID, "count", len(messages))
	return messages, nil
}

func (r ConversationRepository) GetParticipants(conversationID string) ([]domain.Participant, error) {
	var raw [][]byte
	prefix := []byte(fmt.Sprintf("participant:%s:", conversationID))
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	participants := make([]domain.Participant, 0, len(raw))
	for _, b := range raw {
		var p diskParticipant
		if err = json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
		participants = append(participants, domain.Participant{
			Identity:    p.Identity,
			DisplayName: p.DisplayName,
		})
	}
	return participants, nil
}

func fromMessage(m domain.Message) diskMessage {
	return diskMessage{
		ID:     m.ID,
		Author: m.AuthorIdentity,
		Body:   m.Body,
		At:     m.At,
		Media:  m.Media,
	}
}

func toMessage(m diskMessage) domain.Message {
	return domain.Message{
		ID:             lo.Ternary(m.ID != uuid.Nil, m.ID, uuid.New()),
		AuthorIdentity: m.Author,
		Body:           m.Body,
		At:             m.At,
		Media:          m.Media,
	}
}
