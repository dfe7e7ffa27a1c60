// Package prompt converts session history into role-tagged turns and fits
// them to a model's input budget.
package prompt

import (
	"github.com/mimicry-labs/personad/internal/chatlog"
)

// Role values understood by the inference backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Token accounting for the target model. The context window is 8192 tokens;
// we aim well below it because EstimateTokens is a heuristic, and reserve
// room for the model's reply.
const (
	TargetInputTokens  = 3800
	OutputTokenReserve = 500
)

// InputBudget is the token budget handed to BuildTurns: the input target
// minus the reply reserve, so the model always has room to respond.
const InputBudget = TargetInputTokens - OutputTokenReserve

// Turn is one role-tagged unit sent to the AI backend.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EstimateTokens estimates the token count of a string at four characters
// per token, rounding up. A deliberate heuristic, not real tokenization.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// BuildTurns maps session messages to turns and truncates them to budget.
// Messages from other become user turns; messages from persona become
// assistant turns. Turns are kept newest-first until the budget runs out;
// the first turn that would overflow is kept as a tail fragment (prefixed
// "..." when shortened) and everything older is dropped. The system turn is
// always present and first. When at least one message exists the output
// always contains at least one conversation turn, even if that turn must be
// cut to a sliver.
func BuildTurns(system string, msgs []chatlog.Message, persona, other string, budget int) []Turn {
	turns := make([]Turn, 0, len(msgs))
	for _, msg := range msgs {
		role := RoleUser
		if msg.Sender == persona {
			role = RoleAssistant
		}
		turns = append(turns, Turn{Role: role, Content: msg.Text})
	}

	kept := truncate(turns, EstimateTokens(system), budget)

	out := make([]Turn, 0, len(kept)+1)
	out = append(out, Turn{Role: RoleSystem, Content: system})
	return append(out, kept...)
}

// truncate walks turns newest to oldest, accumulating token estimates on
// top of the system prompt's, and returns the contiguous most-recent run
// that fits. The first overflowing turn is tail-truncated rather than
// dropped; older turns never survive past it.
func truncate(turns []Turn, systemTokens, budget int) []Turn {
	var kept []Turn
	total := systemTokens

	for i := len(turns) - 1; i >= 0; i-- {
		turn := turns[i]
		cost := EstimateTokens(turn.Role) + EstimateTokens(turn.Content)

		if total+cost <= budget {
			kept = append([]Turn{turn}, kept...)
			total += cost
			continue
		}

		remaining := budget - total - EstimateTokens(turn.Role)
		if remaining < 1 {
			if len(kept) > 0 {
				break
			}
			// Nothing kept yet: the most recent turn must appear even when
			// the budget is already blown, so keep one token of tail.
			remaining = 1
		}

		content := turn.Content
		keep := remaining * 4
		if keep < len(content) {
			content = "..." + content[len(content)-keep:]
		}
		kept = append([]Turn{{Role: turn.Role, Content: content}}, kept...)
		break
	}

	return kept
}
