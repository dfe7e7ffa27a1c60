package service

import "errors"

// Sentinel errors the API boundary maps to HTTP statuses. Parser failures
// (chatlog.ErrAmbiguousSpeakers) pass through this package unwrapped in
// meaning: errors.Is still matches them.
var (
	// ErrUnknownDemo is returned for a demo id with no built-in transcript.
	ErrUnknownDemo = errors.New("invalid demo ID provided")

	// ErrBadPersona is returned when the requested persona is not one of
	// the session's two participants, or when the other participant cannot
	// be resolved uniquely.
	ErrBadPersona = errors.New("persona not found in this chat")

	// ErrEmptyAIResponse is returned when the model produced no usable
	// text. Never retried.
	ErrEmptyAIResponse = errors.New("AI did not return a valid response")
)
