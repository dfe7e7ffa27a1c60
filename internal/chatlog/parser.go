package chatlog

import (
	"errors"
	"regexp"
	"strings"
)

// ErrAmbiguousSpeakers is returned when a transcript does not contain at
// least two distinct senders, which makes persona selection impossible.
var ErrAmbiguousSpeakers = errors.New("could not identify two distinct participants in the chat")

// UnknownTimestamp is the sentinel timestamp assigned to messages parsed
// from transcripts that carry no timestamps of their own.
const UnknownTimestamp = "UNKNOWN"

// Message is a single chat message as it appeared in the exported
// transcript. Text may contain embedded newlines where the export wrapped
// a message across multiple lines.
type Message struct {
	Timestamp string `json:"timestamp"`
	Sender    string `json:"sender"`
	Text      string `json:"message"`
}

// Parsed is the result of parsing a transcript: the messages in original
// order and the participants in first-appearance order, deduplicated.
type Parsed struct {
	Messages     []Message
	Participants []string
}

// Message start for WhatsApp-style exports: "1/2/24, 10:30 AM - Name: text".
// Date and time separators vary across locales; AM/PM is optional and
// case-insensitive.
var timestampedPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}, \d{1,2}:\d{2}(?:\s*(?:AM|PM|am|pm))?)\s*-\s*([^:]+):\s*(.*)$`)

// Message start for bare "Name: text" transcripts.
var simplePattern = regexp.MustCompile(`^([^:]+):\s*(.*)$`)

// Parse parses an exported two-person chat transcript. It first tries the
// timestamped export grammar; if that yields no messages at all, it retries
// the whole input against the simple "Name: text" grammar. The two attempts
// are independent — nothing from a failed timestamped pass carries over.
func Parse(text string) (*Parsed, error) {
	messages := parseTimestamped(text)
	if len(messages) == 0 {
		messages = parseSimple(text)
	}

	participants := collectParticipants(messages)
	if len(participants) < 2 {
		return nil, ErrAmbiguousSpeakers
	}

	return &Parsed{Messages: messages, Participants: participants}, nil
}

// parseTimestamped scans the input against the timestamped export grammar.
// Export noise (system notices, media markers, encryption banners) is
// skipped outright; any other non-matching line extends the open message.
func parseTimestamped(text string) []Message {
	var messages []Message
	var current *Message

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if skipLine(trimmed) {
			continue
		}

		if m := timestampedPattern.FindStringSubmatch(trimmed); m != nil {
			if current != nil {
				messages = append(messages, *current)
			}
			current = &Message{Timestamp: m[1], Sender: strings.TrimSpace(m[2]), Text: m[3]}
		} else if current != nil {
			current.Text += "\n" + trimmed
		}
	}

	if current != nil {
		messages = append(messages, *current)
	}
	return messages
}

// parseSimple scans the input against the bare "Name: text" grammar. All
// messages get the UnknownTimestamp sentinel.
func parseSimple(text string) []Message {
	var messages []Message
	var current *Message

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := simplePattern.FindStringSubmatch(trimmed); m != nil {
			if current != nil {
				messages = append(messages, *current)
			}
			current = &Message{Timestamp: UnknownTimestamp, Sender: strings.TrimSpace(m[1]), Text: m[2]}
		} else if current != nil {
			current.Text += "\n" + trimmed
		}
	}

	if current != nil {
		messages = append(messages, *current)
	}
	return messages
}

// skipLine reports whether a line is export noise rather than chat content:
// bracketed system notices, encryption banners, media and attachment
// markers, shared live locations, or the literal "null" some exporters emit.
func skipLine(trimmed string) bool {
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return true
	}
	if strings.Contains(trimmed, "Messages and calls are end-to-end encrypted") {
		return true
	}
	if strings.Contains(trimmed, "<Media omitted>") {
		return true
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "(file attached)") {
		return true
	}
	if strings.Contains(lower, "live location shared") {
		return true
	}
	return lower == "null"
}

// collectParticipants returns distinct senders in first-appearance order.
func collectParticipants(messages []Message) []string {
	seen := make(map[string]bool, 2)
	var participants []string
	for _, msg := range messages {
		if !seen[msg.Sender] {
			seen[msg.Sender] = true
			participants = append(participants, msg.Sender)
		}
	}
	return participants
}
