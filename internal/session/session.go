// Package session owns the ephemeral per-session state: creation from a
// parsed transcript, retrieval, lazy history seeding, and appends. Records
// live only in the injected expiring key-value store; a session nobody
// touches for the configured TTL simply vanishes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mimicry-labs/personad/internal/chatlog"
	"github.com/mimicry-labs/personad/internal/kv"
)

// ErrNotFound is returned for sessions that are missing or TTL-expired.
// The two cases are indistinguishable by design.
var ErrNotFound = errors.New("session not found or expired")

// Record is the full state of one chat session. OriginalMessages is the
// immutable parse snapshot; Messages is the live, append-only conversation,
// seeded lazily from the snapshot on first history fetch.
type Record struct {
	OriginalMessages []chatlog.Message `json:"originalMessages"`
	Messages         []chatlog.Message `json:"messages"`
	Participants     []string          `json:"participants"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Store persists Records in an expiring key-value store. Every write — create,
// seed, append — re-puts the whole serialized record with a fresh TTL, so the
// inactivity clock restarts on each interaction.
type Store struct {
	kv  kv.Store
	ttl time.Duration
}

func NewStore(backing kv.Store, ttl time.Duration) *Store {
	return &Store{kv: backing, ttl: ttl}
}

// Create stores a new session for a parsed transcript and returns its id.
// The live message list starts empty; History seeds it on first fetch.
func (s *Store) Create(ctx context.Context, parsed *chatlog.Parsed) (string, error) {
	id := uuid.NewString()
	rec := &Record{
		OriginalMessages: parsed.Messages,
		Messages:         []chatlog.Message{},
		Participants:     parsed.Participants,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.put(ctx, id, rec); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a session record. Missing and expired sessions both return
// ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	value, ok, err := s.kv.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &rec, nil
}

// Seed copies the original transcript into the live message list and
// persists. Callers invoke this at most once per session, when the live
// list is still empty.
func (s *Store) Seed(ctx context.Context, id string, rec *Record) error {
	rec.Messages = append([]chatlog.Message{}, rec.OriginalMessages...)
	return s.put(ctx, id, rec)
}

// Append adds messages to the live list and persists the whole record.
// Two concurrent appends to the same session race: the backing store offers
// only single-key get/put, so the later put wins and the earlier append is
// lost (last-writer-wins).
func (s *Store) Append(ctx context.Context, id string, rec *Record, msgs ...chatlog.Message) error {
	rec.Messages = append(rec.Messages, msgs...)
	return s.put(ctx, id, rec)
}

func (s *Store) put(ctx context.Context, id string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := s.kv.Put(ctx, id, string(data), s.ttl); err != nil {
		return fmt.Errorf("store session %s: %w", id, err)
	}
	return nil
}
