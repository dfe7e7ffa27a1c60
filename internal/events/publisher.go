// Package events publishes session lifecycle events over NATS. The
// publisher is optional: a nil *Publisher is a no-op, so the service runs
// fine without a broker.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subjects for session lifecycle events.
const (
	SubjectSessionCreated = "persona.session.created"
	SubjectReplyGenerated = "persona.chat.reply"
)

// SessionCreated is emitted when a transcript is ingested into a new session.
type SessionCreated struct {
	SessionID    string    `json:"session_id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReplyGenerated is emitted after the AI produces a persona reply.
type ReplyGenerated struct {
	SessionID string `json:"session_id"`
	Persona   string `json:"persona"`
	Chars     int    `json:"chars"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

// Publish sends an event. Publishing is best-effort: callers log failures
// but never fail a request over them.
func (p *Publisher) Publish(subject string, data any) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.conn.Close()
}
