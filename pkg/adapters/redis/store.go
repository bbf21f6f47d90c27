// Package redis implements the conversation store and distributed locker
// on Redis, for multi-replica deployments.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/canopyhq/canopy/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ConversationStore using Redis.
//
// Layout per session:
//
//	{prefix}{id}:answers   hash   question ID -> answer JSON
//	{prefix}{id}:state     string state snapshot JSON
//	{prefix}{id}:insights  list   insight JSON, append-only
//	{prefix}index          zset   session ID scored by expiry
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "canopy:session:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) answersKey(sessionID string) string {
	return s.prefix + sessionID + ":answers"
}

func (s *Store) stateKey(sessionID string) string {
	return s.prefix + sessionID + ":state"
}

func (s *Store) insightsKey(sessionID string) string {
	return s.prefix + sessionID + ":insights"
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// index adds the session to the ZSET index and refreshes key TTLs.
// Score = Now + TTL. If TTL = 0, the score is far in the future.
func (s *Store) index(ctx context.Context, pipe backend.Pipeliner, sessionID string) {
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01 (Far enough for now)
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})

	if s.ttl > 0 {
		pipe.Expire(ctx, s.answersKey(sessionID), s.ttl)
		pipe.Expire(ctx, s.stateKey(sessionID), s.ttl)
		pipe.Expire(ctx, s.insightsKey(sessionID), s.ttl)
	}
}

// SaveAnswer writes one answer into the session's answer hash.
// Re-answering overwrites the field, so the last write wins.
func (s *Store) SaveAnswer(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) error {
	record := domain.AnswerRecord{QuestionID: questionID, Answer: answer, Timestamp: at.UnixMilli()}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.answersKey(sessionID), questionID, data)
	s.index(ctx, pipe, sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save answer to redis: %w", err)
	}
	return nil
}

// SaveState persists the state snapshot as JSON.
func (s *Store) SaveState(ctx context.Context, sessionID string, state *domain.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.stateKey(sessionID), data, s.ttl)
	s.index(ctx, pipe, sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save state to redis: %w", err)
	}
	return nil
}

// AppendInsight pushes insights onto the session's insight list.
func (s *Store) AppendInsight(ctx context.Context, sessionID string, insights ...domain.RealTimeInsight) error {
	if len(insights) == 0 {
		return nil
	}

	payloads := make([]any, 0, len(insights))
	for _, ins := range insights {
		data, err := json.Marshal(ins)
		if err != nil {
			return fmt.Errorf("failed to marshal insight: %w", err)
		}
		payloads = append(payloads, data)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, s.insightsKey(sessionID), payloads...)
	s.index(ctx, pipe, sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append insights to redis: %w", err)
	}
	return nil
}

// LoadSession retrieves everything recorded for a session.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (*domain.SessionRecords, error) {
	pipe := s.client.Pipeline()
	answersCmd := pipe.HGetAll(ctx, s.answersKey(sessionID))
	stateCmd := pipe.Get(ctx, s.stateKey(sessionID))
	insightsCmd := pipe.LRange(ctx, s.insightsKey(sessionID), 0, -1)

	if _, err := pipe.Exec(ctx); err != nil && err != backend.Nil {
		return nil, fmt.Errorf("failed to load session from redis: %w", err)
	}

	rawAnswers := answersCmd.Val()
	rawState, stateErr := stateCmd.Result()
	rawInsights := insightsCmd.Val()

	if len(rawAnswers) == 0 && stateErr == backend.Nil && len(rawInsights) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	records := &domain.SessionRecords{
		Answers: make(map[string]domain.Answer, len(rawAnswers)),
	}

	for questionID, raw := range rawAnswers {
		var record domain.AnswerRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answer %q: %w", questionID, err)
		}
		records.Answers[questionID] = record.Answer
	}

	if stateErr == nil {
		var state domain.ConversationState
		if err := json.Unmarshal([]byte(rawState), &state); err != nil {
			return nil, fmt.Errorf("failed to unmarshal state: %w", err)
		}
		records.State = &state
		records.Messages = state.History
	} else if stateErr != backend.Nil {
		return nil, fmt.Errorf("failed to get state from redis: %w", stateErr)
	}

	for i, raw := range rawInsights {
		var ins domain.RealTimeInsight
		if err := json.Unmarshal([]byte(raw), &ins); err != nil {
			return nil, fmt.Errorf("failed to unmarshal insight %d: %w", i, err)
		}
		records.Insights = append(records.Insights, ins)
	}

	return records, nil
}

// Delete removes all keys for the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.answersKey(sessionID), s.stateKey(sessionID), s.insightsKey(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns active sessions from the index.
// Uses ZSET lazy cleanup to drop expired entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	// Lazy cleanup: remove expired keys from the index.
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
