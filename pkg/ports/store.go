package ports

import (
	"context"
	"time"

	"github.com/canopyhq/canopy/pkg/domain"
)

// ConversationStore defines the interface for persisting conversation
// data. Answers are durable the moment they are saved, independently of
// the derived state, so a session survives a crash mid-turn and can be
// resumed from its answers alone.
type ConversationStore interface {
	// SaveAnswer persists one answer immediately. Re-answering a
	// question overwrites the prior value (last write wins).
	SaveAnswer(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) error

	// LoadSession retrieves everything recorded for a session.
	// Returns domain.ErrSessionNotFound if nothing was ever saved.
	// A record with a nil State but non-empty Answers is valid: the
	// caller reconstructs state from the answers.
	LoadSession(ctx context.Context, sessionID string) (*domain.SessionRecords, error)

	// SaveState persists the derived conversation state snapshot.
	SaveState(ctx context.Context, sessionID string, state *domain.ConversationState) error

	// AppendInsight adds insights to the session's insight log.
	AppendInsight(ctx context.Context, sessionID string, insights ...domain.RealTimeInsight) error

	// Delete removes all data for a session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all known sessions.
	List(ctx context.Context) ([]string, error)
}
