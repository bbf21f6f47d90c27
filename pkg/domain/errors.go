package domain

import "errors"

// ErrSessionNotFound is returned when a session ID has no records in the
// store.
var ErrSessionNotFound = errors.New("session not found")

// ErrQuestionNotFound is returned when a question ID is not in the
// catalog.
var ErrQuestionNotFound = errors.New("question not found")

// ErrInvalidAnswer is returned when an answer's shape does not fit the
// question it targets. Rejected before any state mutation.
var ErrInvalidAnswer = errors.New("invalid answer")

// ErrStoreUnavailable wraps transient persistence failures that survived
// the bounded retries. Callers may retry the whole turn.
var ErrStoreUnavailable = errors.New("conversation store unavailable")
