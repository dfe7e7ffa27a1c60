package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mimicry-labs/personad/internal/chatlog"
	"github.com/mimicry-labs/personad/internal/kv"
)

func testParsed() *chatlog.Parsed {
	return &chatlog.Parsed{
		Messages: []chatlog.Message{
			{Timestamp: "01/01/24, 10:00 AM", Sender: "Alice", Text: "hi"},
			{Timestamp: "01/01/24, 10:05 AM", Sender: "Bob", Text: "hello"},
		},
		Participants: []string{"Alice", "Bob"},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(kv.NewMemory(), 15*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, testParsed())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rec.OriginalMessages) != 2 {
		t.Errorf("expected 2 original messages, got %d", len(rec.OriginalMessages))
	}
	if len(rec.Messages) != 0 {
		t.Errorf("live messages should start empty, got %d", len(rec.Messages))
	}
	if rec.Participants[0] != "Alice" || rec.Participants[1] != "Bob" {
		t.Errorf("participants = %v", rec.Participants)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(kv.NewMemory(), 15*time.Minute)

	_, err := store.Get(context.Background(), "no-such-session")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SeedThenAppend(t *testing.T) {
	store := NewStore(kv.NewMemory(), 15*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, testParsed())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rec, _ := store.Get(ctx, id)
	if err := store.Seed(ctx, id, rec); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, _ = store.Get(ctx, id)
	if len(rec.Messages) != 2 {
		t.Fatalf("expected 2 seeded messages, got %d", len(rec.Messages))
	}

	msg := chatlog.Message{Timestamp: "01/01/24, 10:10 AM", Sender: "Alice", Text: "hey"}
	if err := store.Append(ctx, id, rec, msg); err != nil {
		t.Fatalf("append: %v", err)
	}

	rec, _ = store.Get(ctx, id)
	if len(rec.Messages) != 3 {
		t.Fatalf("expected 3 messages after append, got %d", len(rec.Messages))
	}
	if rec.Messages[2].Text != "hey" {
		t.Errorf("appended message = %+v", rec.Messages[2])
	}
	// The parse snapshot never changes.
	if len(rec.OriginalMessages) != 2 {
		t.Errorf("original snapshot mutated: %d messages", len(rec.OriginalMessages))
	}
}

func TestStore_ExpiredSessionIsGone(t *testing.T) {
	backing := kv.NewMemory()
	store := NewStore(backing, time.Nanosecond)
	ctx := context.Background()

	id, err := store.Create(ctx, testParsed())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(time.Millisecond)

	_, err = store.Get(ctx, id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}
