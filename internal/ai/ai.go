// Package ai defines the inference client capability and its concrete
// backends. Backends are interchangeable: the service layer depends only on
// the Client interface.
package ai

import (
	"context"

	"github.com/mimicry-labs/personad/internal/prompt"
)

// Client runs a single chat completion against an inference backend and
// returns the model's text. One blocking round trip per call; no streaming,
// no retries at this layer.
type Client interface {
	Run(ctx context.Context, model string, turns []prompt.Turn, maxTokens int) (string, error)
}
