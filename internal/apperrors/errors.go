package apperrors

import "errors"

// Only these two error kinds are caller-visible. Everything inside the
// recognition and generation pipeline degrades to defaults instead of
// returning an error.
var (
	// ErrSessionNotFound means the referenced session id is absent from
	// the registry (or not in the state the operation requires).
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyConversation means note generation was requested on a
	// session with zero messages.
	ErrEmptyConversation = errors.New("no conversation to analyze")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrEmptyConversation)
}
