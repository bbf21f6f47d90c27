package canopy

import (
	"context"
	"time"

	"log/slog"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/internal/runtime"
	"github.com/canopyhq/canopy/pkg/adapters/memory"
	"github.com/canopyhq/canopy/pkg/catalog"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/observability"
	"github.com/canopyhq/canopy/pkg/persistence/middleware"
	"github.com/canopyhq/canopy/pkg/ports"
	"github.com/canopyhq/canopy/pkg/session"
)

// Engine is the high-level entry point for the Canopy library.
// It wraps the internal turn pipeline and provides a simplified API for
// consumers.
type Engine struct {
	runtime *runtime.Engine
	catalog *catalog.Catalog
	store   ports.ConversationStore

	renderer      ports.Renderer
	locker        ports.DistributedLocker
	logger        *slog.Logger
	metrics       *observability.Metrics
	renderTimeout time.Duration
	middleware    []middleware.Middleware
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the built-in question catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithStore injects a persistence backend. Defaults to in-memory.
func WithStore(store ports.ConversationStore) Option {
	return func(e *Engine) {
		if store != nil {
			e.store = store
		}
	}
}

// WithRenderer enables AI message rendering. Without a renderer every
// message is delivered verbatim with a canned acknowledgment.
func WithRenderer(r ports.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithLocker enables distributed session locking for multi-replica
// deployments.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRenderTimeout bounds the per-turn renderer call.
func WithRenderTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.renderTimeout = d
	}
}

// WithStoreMiddleware wraps the persistence backend with decorators,
// applied in order (the first middleware is the outermost). Useful for
// cross-cutting concerns such as PII masking before answers touch the
// store.
func WithStoreMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Engine) {
		e.middleware = append(e.middleware, mws...)
	}
}

// New initializes a new Canopy Engine. By default it runs the built-in
// discovery catalog against an in-memory store.
func New(opts ...Option) *Engine {
	eng := &Engine{
		catalog:       catalog.Default(),
		logger:        logging.NewNop(),
		renderTimeout: runtime.DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	for i := len(eng.middleware) - 1; i >= 0; i-- {
		eng.store = eng.middleware[i](eng.store)
	}

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithSessionManager(session.NewManager(sessionOpts...)),
		runtime.WithRenderTimeout(eng.renderTimeout),
	}
	if eng.renderer != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithRenderer(eng.renderer))
	}
	if eng.metrics != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithMetrics(eng.metrics))
	}

	eng.runtime = runtime.NewEngine(eng.catalog, eng.store, runtimeOpts...)
	return eng
}

// ProcessAnswer runs one conversation turn: the answer is persisted, the
// state advances, insights fire, and the next assistant message comes
// back in the result.
func (e *Engine) ProcessAnswer(ctx context.Context, sessionID, questionID string, answer domain.Answer) (*domain.TurnResult, error) {
	return e.runtime.ProcessAnswer(ctx, sessionID, questionID, answer)
}

// ProcessAnswerAt is ProcessAnswer with a caller-supplied answer
// timestamp. A zero time falls back to the engine clock.
func (e *Engine) ProcessAnswerAt(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) (*domain.TurnResult, error) {
	return e.runtime.ProcessAnswerAt(ctx, sessionID, questionID, answer, at)
}

// GetState returns the current state for a session. Unknown sessions
// yield a fresh state positioned at the catalog's entry question.
func (e *Engine) GetState(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	return e.runtime.GetState(ctx, sessionID)
}

// Delete removes every trace of a session.
func (e *Engine) Delete(ctx context.Context, sessionID string) error {
	return e.runtime.Delete(ctx, sessionID)
}

// Sessions returns the IDs of all known sessions.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.runtime.List(ctx)
}

// Catalog exposes the question catalog the engine runs.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
