// Package service orchestrates the chat flow: transcript ingest, history
// fetches with lazy seeding, and persona replies through the injected
// inference client.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mimicry-labs/personad/internal/ai"
	"github.com/mimicry-labs/personad/internal/chatlog"
	"github.com/mimicry-labs/personad/internal/events"
	"github.com/mimicry-labs/personad/internal/prompt"
	"github.com/mimicry-labs/personad/internal/session"
)

// SelfLabel is the caller-facing sender name substituted for the
// non-persona participant in history responses.
const SelfLabel = "You"

// Timestamp layout for messages generated during a live session, matching
// the exported transcript format.
const timestampLayout = "01/02/06, 03:04 PM"

// ChatService wires the parser, session store, prompt builder, and
// inference client into the three boundary operations.
type ChatService struct {
	sessions *session.Store
	ai       ai.Client
	events   *events.Publisher
	model    string
	logger   *slog.Logger
}

func New(sessions *session.Store, client ai.Client, pub *events.Publisher, model string, logger *slog.Logger) *ChatService {
	return &ChatService{
		sessions: sessions,
		ai:       client,
		events:   pub,
		model:    model,
		logger:   logger,
	}
}

// Ingest parses a raw transcript and creates a session for it.
func (s *ChatService) Ingest(ctx context.Context, raw string) (string, []string, error) {
	parsed, err := chatlog.Parse(raw)
	if err != nil {
		return "", nil, err
	}
	return s.createSession(ctx, parsed)
}

// IngestDemo creates a session from one of the built-in transcripts.
func (s *ChatService) IngestDemo(ctx context.Context, demoID string) (string, []string, error) {
	raw, ok := demoChats[demoID]
	if !ok {
		return "", nil, ErrUnknownDemo
	}
	parsed, err := chatlog.Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("parse demo %s: %w", demoID, err)
	}
	return s.createSession(ctx, parsed)
}

func (s *ChatService) createSession(ctx context.Context, parsed *chatlog.Parsed) (string, []string, error) {
	id, err := s.sessions.Create(ctx, parsed)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("session created", "session_id", id, "messages", len(parsed.Messages))

	if err := s.events.Publish(events.SubjectSessionCreated, events.SessionCreated{
		SessionID:    id,
		Participants: parsed.Participants,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		s.logger.Warn("failed to publish session event", "error", err)
	}

	return id, parsed.Participants, nil
}

// History returns the session's live messages and participants, seeding the
// live list from the parse snapshot on first access. Senders other than the
// persona are normalized to SelfLabel in the returned copy.
func (s *ChatService) History(ctx context.Context, sessionID, persona string) ([]chatlog.Message, []string, error) {
	rec, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !isParticipant(rec, persona) {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadPersona, persona)
	}

	if len(rec.Messages) == 0 {
		if err := s.sessions.Seed(ctx, sessionID, rec); err != nil {
			return nil, nil, err
		}
	}

	display := make([]chatlog.Message, len(rec.Messages))
	for i, msg := range rec.Messages {
		if msg.Sender != persona {
			msg.Sender = SelfLabel
		}
		display[i] = msg
	}

	return display, rec.Participants, nil
}

// Reply appends the user's message as the non-persona participant, asks the
// inference backend to continue the conversation as the persona, appends the
// reply, and returns its text. History and reply are persisted in one write.
func (s *ChatService) Reply(ctx context.Context, sessionID, persona, text string) (string, error) {
	rec, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	other, err := otherParticipant(rec, persona)
	if err != nil {
		return "", err
	}

	now := time.Now().Format(timestampLayout)
	userMsg := chatlog.Message{Timestamp: now, Sender: other, Text: text}
	history := append(append([]chatlog.Message{}, rec.Messages...), userMsg)

	system := fmt.Sprintf(
		"You are mimicking %s. Your responses should be in the style of %s. "+
			"Keep responses concise and relevant to the conversation. "+
			"Based on the following chat history, continue the conversation as %s.",
		persona, persona, persona,
	)

	turns := prompt.BuildTurns(system, history, persona, other, prompt.InputBudget)

	reply, err := s.ai.Run(ctx, s.model, turns, prompt.OutputTokenReserve)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	if reply == "" {
		return "", ErrEmptyAIResponse
	}

	aiMsg := chatlog.Message{
		Timestamp: time.Now().Format(timestampLayout),
		Sender:    persona,
		Text:      reply,
	}

	// One put persists both messages and refreshes the TTL.
	if err := s.sessions.Append(ctx, sessionID, rec, userMsg, aiMsg); err != nil {
		return "", err
	}

	s.logger.Info("reply generated", "session_id", sessionID, "persona", persona, "chars", len(reply))

	if err := s.events.Publish(events.SubjectReplyGenerated, events.ReplyGenerated{
		SessionID: sessionID,
		Persona:   persona,
		Chars:     len(reply),
	}); err != nil {
		s.logger.Warn("failed to publish reply event", "error", err)
	}

	return reply, nil
}

func isParticipant(rec *session.Record, persona string) bool {
	for _, p := range rec.Participants {
		if p == persona {
			return true
		}
	}
	return false
}

// otherParticipant resolves the session participant the persona talks to.
func otherParticipant(rec *session.Record, persona string) (string, error) {
	if !isParticipant(rec, persona) {
		return "", fmt.Errorf("%w: %q", ErrBadPersona, persona)
	}
	for _, p := range rec.Participants {
		if p != persona {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no participant other than %q", ErrBadPersona, persona)
}
