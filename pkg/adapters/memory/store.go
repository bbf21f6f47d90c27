// Package memory provides in-memory adapter implementations, used as the
// default backend and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/canopyhq/canopy/pkg/domain"
)

// sessionData is everything held for one session.
type sessionData struct {
	state    *domain.ConversationState
	answers  map[string]domain.Answer
	insights []domain.RealTimeInsight
}

// Store implements ports.ConversationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*sessionData
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*sessionData),
	}
}

// session returns the record for an ID, creating it if needed.
// Caller must hold the write lock.
func (s *Store) session(sessionID string) *sessionData {
	sd, ok := s.data[sessionID]
	if !ok {
		sd = &sessionData{answers: make(map[string]domain.Answer)}
		s.data[sessionID] = sd
	}
	return sd
}

// SaveAnswer records an answer, overwriting any prior value for the
// question.
func (s *Store) SaveAnswer(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).answers[questionID] = answer
	return nil
}

// SaveState persists the state snapshot.
func (s *Store) SaveState(ctx context.Context, sessionID string, state *domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Deep copy to ensure isolation, similar to serialization
	s.session(sessionID).state = state.Clone()
	return nil
}

// AppendInsight adds insights to the session log.
func (s *Store) AppendInsight(ctx context.Context, sessionID string, insights ...domain.RealTimeInsight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sd := s.session(sessionID)
	sd.insights = append(sd.insights, insights...)
	return nil
}

// LoadSession retrieves everything recorded for a session.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (*domain.SessionRecords, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sd, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// Copy on read so the caller can't mutate store data by pointer.
	records := &domain.SessionRecords{
		State:    sd.state.Clone(),
		Answers:  make(map[string]domain.Answer, len(sd.answers)),
		Insights: append([]domain.RealTimeInsight(nil), sd.insights...),
	}
	for k, v := range sd.answers {
		records.Answers[k] = v
	}
	if records.State != nil {
		records.Messages = append([]domain.Message(nil), records.State.History...)
	}
	return records, nil
}

// Delete removes all data for a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
