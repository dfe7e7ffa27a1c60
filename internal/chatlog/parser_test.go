package chatlog

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_TimestampedFormat(t *testing.T) {
	input := strings.Join([]string{
		"01/01/24, 10:00 AM - Alice: hi",
		"01/01/24, 10:05 AM - Bob: hello",
		"01/01/24, 10:10 AM - Alice: how are you?",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(parsed.Messages))
	}

	first := parsed.Messages[0]
	if first.Timestamp != "01/01/24, 10:00 AM" || first.Sender != "Alice" || first.Text != "hi" {
		t.Errorf("msg[0] = %+v", first)
	}
	if parsed.Messages[1].Sender != "Bob" || parsed.Messages[1].Text != "hello" {
		t.Errorf("msg[1] = %+v", parsed.Messages[1])
	}
}

func TestParse_ParticipantsFirstSeenOrder(t *testing.T) {
	input := strings.Join([]string{
		"01/01/24, 10:00 AM - Zoe: first",
		"01/01/24, 10:05 AM - Adam: second",
		"01/01/24, 10:10 AM - Zoe: third",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %v", parsed.Participants)
	}
	// Zoe spoke first, so she comes first regardless of name ordering.
	if parsed.Participants[0] != "Zoe" || parsed.Participants[1] != "Adam" {
		t.Errorf("participants = %v, want [Zoe Adam]", parsed.Participants)
	}
}

func TestParse_ContinuationLines(t *testing.T) {
	input := strings.Join([]string{
		"01/01/24, 10:00 AM - Alice: first line",
		"second line",
		"third line",
		"01/01/24, 10:05 AM - Bob: reply",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(parsed.Messages))
	}
	want := "first line\nsecond line\nthird line"
	if parsed.Messages[0].Text != want {
		t.Errorf("msg[0] text = %q, want %q", parsed.Messages[0].Text, want)
	}
}

func TestParse_LastMessageFlushed(t *testing.T) {
	input := strings.Join([]string{
		"01/01/24, 10:00 AM - Alice: hi",
		"01/01/24, 10:05 AM - Bob: bye",
		"trailing continuation",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(parsed.Messages))
	}
	if parsed.Messages[1].Text != "bye\ntrailing continuation" {
		t.Errorf("msg[1] text = %q", parsed.Messages[1].Text)
	}
}

func TestParse_SkipsExportNoise(t *testing.T) {
	input := strings.Join([]string{
		"[01/01/24] System notice",
		"Messages and calls are end-to-end encrypted. No one outside of this chat can read them.",
		"01/01/24, 10:00 AM - Alice: hi",
		"<Media omitted>",
		"01/01/24, 10:05 AM - Bob: photo.jpg (file attached)",
		"null",
		"NULL",
		"live location shared",
		"01/01/24, 10:10 AM - Bob: here it is",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The "(file attached)" line is skipped entirely — it never becomes a
	// message or a continuation — so only two messages survive.
	if len(parsed.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(parsed.Messages), parsed.Messages)
	}
	if parsed.Messages[0].Sender != "Alice" || parsed.Messages[0].Text != "hi" {
		t.Errorf("msg[0] = %+v", parsed.Messages[0])
	}
	if parsed.Messages[1].Sender != "Bob" || parsed.Messages[1].Text != "here it is" {
		t.Errorf("msg[1] = %+v", parsed.Messages[1])
	}
}

func TestParse_NoiseIsNotContinuation(t *testing.T) {
	input := strings.Join([]string{
		"01/01/24, 10:00 AM - Alice: hi",
		"<Media omitted>",
		"01/01/24, 10:05 AM - Bob: hello",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Messages[0].Text != "hi" {
		t.Errorf("noise leaked into message: %q", parsed.Messages[0].Text)
	}
}

func TestParse_SimpleFallback(t *testing.T) {
	input := strings.Join([]string{
		"Alice: hey there",
		"Bob: hi!",
		"Alice: multi",
		"line message",
	}, "\n")

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(parsed.Messages))
	}
	for i, msg := range parsed.Messages {
		if msg.Timestamp != UnknownTimestamp {
			t.Errorf("msg[%d] timestamp = %q, want %q", i, msg.Timestamp, UnknownTimestamp)
		}
	}
	if parsed.Messages[2].Text != "multi\nline message" {
		t.Errorf("msg[2] text = %q", parsed.Messages[2].Text)
	}
	if parsed.Participants[0] != "Alice" || parsed.Participants[1] != "Bob" {
		t.Errorf("participants = %v", parsed.Participants)
	}
}

func TestParse_SingleSender(t *testing.T) {
	input := "01/01/24, 10:00 AM - Alice: talking\n01/01/24, 10:05 AM - Alice: to myself"

	_, err := Parse(input)
	if !errors.Is(err, ErrAmbiguousSpeakers) {
		t.Fatalf("expected ErrAmbiguousSpeakers, got %v", err)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("")
	if !errors.Is(err, ErrAmbiguousSpeakers) {
		t.Fatalf("expected ErrAmbiguousSpeakers, got %v", err)
	}
}

func TestParse_24HourTimes(t *testing.T) {
	input := "1/2/2024, 22:15 - Alice: late night\n1/2/2024, 22:16 - Bob: indeed"

	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(parsed.Messages))
	}
	if parsed.Messages[0].Timestamp != "1/2/2024, 22:15" {
		t.Errorf("timestamp = %q", parsed.Messages[0].Timestamp)
	}
}
