// Package runtime implements the turn pipeline: everything that happens
// between receiving an answer and returning the next assistant message.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/catalog"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/insight"
	"github.com/canopyhq/canopy/pkg/observability"
	"github.com/canopyhq/canopy/pkg/persona"
	"github.com/canopyhq/canopy/pkg/ports"
	"github.com/canopyhq/canopy/pkg/session"
)

// DefaultRenderTimeout bounds how long one turn waits on the renderer
// before falling back to the verbatim prompt.
const DefaultRenderTimeout = 5 * time.Second

// Engine runs the answer-processing pipeline. All turns for one session
// are serialized through the session manager; the store is the only
// durable side effect.
type Engine struct {
	catalog    *catalog.Catalog
	store      ports.ConversationStore
	renderer   ports.Renderer
	sessions   *session.Manager
	classifier *persona.Classifier
	insights   *insight.Runner
	metrics    *observability.Metrics
	logger     *slog.Logger

	renderTimeout time.Duration
	now           func() time.Time
	nextID        func() string
}

// Option configures the Engine.
type Option func(*Engine)

// WithRenderer sets the message renderer. Without one every message is
// delivered verbatim.
func WithRenderer(r ports.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithSessionManager overrides the session lock manager.
func WithSessionManager(m *session.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.sessions = m
		}
	}
}

// WithLogger configures the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRenderTimeout bounds the renderer call per turn.
func WithRenderTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.renderTimeout = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine over a catalog and a store.
func NewEngine(cat *catalog.Catalog, store ports.ConversationStore, opts ...Option) *Engine {
	e := &Engine{
		catalog:       cat,
		store:         store,
		sessions:      session.NewManager(),
		classifier:    persona.New(),
		insights:      insight.NewRunner(insight.DefaultRules()),
		logger:        logging.NewNop(),
		renderTimeout: DefaultRenderTimeout,
		now:           time.Now,
	}
	var seq int
	e.nextID = func() string {
		seq++
		return fmt.Sprintf("msg-%d-%d", e.now().UnixNano(), seq)
	}
	for _, opt := range opts {
		opt(e)
	}
	// Rebuild collaborators that depend on the logger.
	e.insights = insight.NewRunner(insight.DefaultRules(), insight.WithLogger(e.logger))
	return e
}

// ProcessAnswer runs one full turn: persist the answer, advance the
// state, generate insights, pick the next question and phrase the reply.
// The answer is stamped with the engine clock.
func (e *Engine) ProcessAnswer(ctx context.Context, sessionID, questionID string, answer domain.Answer) (*domain.TurnResult, error) {
	return e.ProcessAnswerAt(ctx, sessionID, questionID, answer, time.Time{})
}

// ProcessAnswerAt is ProcessAnswer with a caller-supplied answer
// timestamp, for clients that record when the user actually answered.
// A zero time falls back to the engine clock.
func (e *Engine) ProcessAnswerAt(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) (*domain.TurnResult, error) {
	node, ok := e.catalog.Get(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	if err := validateAnswer(node, answer); err != nil {
		return nil, err
	}

	start := e.now()
	var result *domain.TurnResult
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		result, err = e.processLocked(ctx, sessionID, node, answer, at)
		return err
	})
	if err != nil {
		if e.metrics != nil {
			e.metrics.TurnFailures.Inc()
		}
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.TurnsProcessed.Inc()
		e.metrics.TurnDuration.Observe(e.now().Sub(start).Seconds())
		for _, ins := range result.NewInsights {
			e.metrics.InsightsEmitted.WithLabelValues(string(ins.Kind)).Inc()
		}
	}
	return result, nil
}

func (e *Engine) processLocked(ctx context.Context, sessionID string, node *domain.QuestionNode, answer domain.Answer, at time.Time) (*domain.TurnResult, error) {
	now := at
	if now.IsZero() {
		now = e.now()
	}

	// The answer is durable before anything else happens. A crash after
	// this point loses the derived state only, which is rebuildable.
	if err := e.withRetry(ctx, "save answer", func(ctx context.Context) error {
		return e.store.SaveAnswer(ctx, sessionID, node.ID, answer, now)
	}); err != nil {
		return nil, err
	}

	state, err := e.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state = state.Clone()

	state.Context = state.Context.Merge(node.ID, answer)
	deriveBusinessFields(&state.Context, node.ID, answer)

	state.History = append(state.History, domain.Message{
		ID:         e.nextID(),
		Role:       domain.RoleUser,
		Content:    answer.String(),
		QuestionID: node.ID,
		Timestamp:  now,
	})

	state.Persona = e.classifier.Classify(state.History)

	newInsights := e.insights.Evaluate(node, answer, state.Context)
	state.Insights = append(state.Insights, newInsights...)

	next := e.catalog.NextQuestion(node.ID, answer, state.Context)

	// Progress and phase only move forward, even when a re-answered
	// question changes the path.
	if p := e.catalog.Progress(state.Context); p > state.Progress {
		state.Progress = p
	}
	if next == nil {
		state.Progress = 100
	}
	state.Phase = state.Phase.Later(domain.PhaseForProgress(state.Progress))

	if next != nil {
		state.ActiveQuestionID = next.ID
	} else {
		state.ActiveQuestionID = ""
	}

	message := e.renderMessage(ctx, state, next, newInsights)
	state.History = append(state.History, domain.Message{
		ID:        e.nextID(),
		Role:      domain.RoleAssistant,
		Content:   message,
		Timestamp: now,
	})

	if err := e.withRetry(ctx, "save state", func(ctx context.Context) error {
		return e.store.SaveState(ctx, sessionID, state)
	}); err != nil {
		return nil, err
	}
	if len(newInsights) > 0 {
		if err := e.withRetry(ctx, "append insights", func(ctx context.Context) error {
			return e.store.AppendInsight(ctx, sessionID, newInsights...)
		}); err != nil {
			return nil, err
		}
	}

	e.logger.Info("turn processed",
		"session_id", sessionID,
		"question_id", node.ID,
		"progress", state.Progress,
		"phase", state.Phase,
		"insights", len(newInsights),
	)

	return &domain.TurnResult{
		State:           state,
		NextQuestion:    next,
		NewInsights:     newInsights,
		RenderedMessage: message,
	}, nil
}

// GetState returns the current state for a session, rebuilding it from
// raw answers when no snapshot exists.
func (e *Engine) GetState(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	var state *domain.ConversationState
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = e.loadOrCreate(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Delete removes every trace of a session.
func (e *Engine) Delete(ctx context.Context, sessionID string) error {
	return e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return e.store.Delete(ctx, sessionID)
	})
}

// List returns the known session IDs.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// loadOrCreate loads the session, rebuilding state from answers when the
// snapshot is missing (a turn that died between saveAnswer and saveState
// leaves the session in that shape).
func (e *Engine) loadOrCreate(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	var records *domain.SessionRecords
	err := e.withRetry(ctx, "load session", func(ctx context.Context) error {
		var err error
		records, err = e.store.LoadSession(ctx, sessionID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			records = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	entry := e.catalog.Entry()
	if records == nil {
		return domain.NewConversationState(sessionID, entry.ID), nil
	}
	if records.State != nil {
		return records.State, nil
	}

	// Snapshot lost: replay the durable answers.
	e.logger.Warn("rebuilding state from answers", "session_id", sessionID, "answers", len(records.Answers))
	state := domain.NewConversationState(sessionID, entry.ID)
	for questionID, answer := range records.Answers {
		state.Context = state.Context.Merge(questionID, answer)
		deriveBusinessFields(&state.Context, questionID, answer)
	}
	state.Progress = e.catalog.Progress(state.Context)
	state.Phase = state.Phase.Later(domain.PhaseForProgress(state.Progress))
	state.Insights = records.Insights
	return state, nil
}

// validateAnswer checks the answer's shape against the question kind.
// Shape only: an answer value that matches no option is still accepted,
// because next-question resolution treats an unmatched value as free
// text and falls through to the sequential flow. Rejecting it here
// would halt the interview on any free-form reply.
func validateAnswer(node *domain.QuestionNode, answer domain.Answer) error {
	if answer.IsZero() {
		return fmt.Errorf("%w: empty answer for %s", domain.ErrInvalidAnswer, node.ID)
	}
	switch node.Kind {
	case domain.KindSingleChoice, domain.KindConditional:
		if answer.Kind != domain.AnswerText {
			return fmt.Errorf("%w: %s expects a single selected value", domain.ErrInvalidAnswer, node.ID)
		}
	case domain.KindRanking:
		if answer.Kind != domain.AnswerList || len(answer.List) == 0 {
			return fmt.Errorf("%w: %s expects a ranked list", domain.ErrInvalidAnswer, node.ID)
		}
	}
	return nil
}
