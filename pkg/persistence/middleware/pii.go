package middleware

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
)

const masked = "***"

type piiMiddleware struct {
	next     ports.ConversationStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks answers to questions
// whose IDs match any of the patterns before they reach the underlying
// store. Loading returns the masked values; the real content never
// touches disk.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pii pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ConversationStore) ports.ConversationStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) sensitive(questionID string) bool {
	for _, p := range m.patterns {
		if p.MatchString(questionID) {
			return true
		}
	}
	return false
}

func (m *piiMiddleware) SaveAnswer(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) error {
	if m.sensitive(questionID) {
		answer = domain.TextAnswer(masked)
	}
	return m.next.SaveAnswer(ctx, sessionID, questionID, answer, at)
}

func (m *piiMiddleware) SaveState(ctx context.Context, sessionID string, state *domain.ConversationState) error {
	// Clone to avoid side effects on the in-memory state used by the engine.
	cloned := state.Clone()
	for questionID := range cloned.Context.Responses {
		if m.sensitive(questionID) {
			cloned.Context.Responses[questionID] = domain.TextAnswer(masked)
		}
	}
	for i := range cloned.History {
		if cloned.History[i].Role == domain.RoleUser && m.sensitive(cloned.History[i].QuestionID) {
			cloned.History[i].Content = masked
		}
	}
	return m.next.SaveState(ctx, sessionID, cloned)
}

func (m *piiMiddleware) AppendInsight(ctx context.Context, sessionID string, insights ...domain.RealTimeInsight) error {
	return m.next.AppendInsight(ctx, sessionID, insights...)
}

func (m *piiMiddleware) LoadSession(ctx context.Context, sessionID string) (*domain.SessionRecords, error) {
	return m.next.LoadSession(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
