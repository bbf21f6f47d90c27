package insight

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/domain"
)

// Runner evaluates a rule set against each answered question. Node-bound
// rules run only when the node names them; general rules run on every
// answer except conversational pleasantries.
type Runner struct {
	bound   map[string]Rule
	general []Rule
	logger  *slog.Logger
	now     func() time.Time
	nextID  func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used to report recovered rule panics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides insight ID generation. Intended for tests.
func WithIDGenerator(gen func() string) Option {
	return func(r *Runner) {
		if gen != nil {
			r.nextID = gen
		}
	}
}

// NewRunner builds a Runner over the given rules.
func NewRunner(rules []Rule, opts ...Option) *Runner {
	r := &Runner{
		bound:  make(map[string]Rule),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	var seq int
	r.nextID = func() string {
		seq++
		return fmt.Sprintf("insight-%d-%d", time.Now().UnixNano(), seq)
	}
	for _, rule := range rules {
		if rule.NodeBound {
			r.bound[rule.ID] = rule
		} else {
			r.general = append(r.general, rule)
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Evaluate runs the applicable rules for one answered node and returns
// the insights that fired, in rule order. A panicking rule is logged and
// skipped; the remaining rules still run.
func (r *Runner) Evaluate(node *domain.QuestionNode, answer domain.Answer, bc domain.BusinessContext) []domain.RealTimeInsight {
	if node == nil {
		return nil
	}
	var out []domain.RealTimeInsight

	for _, ruleID := range node.InsightRules {
		rule, ok := r.bound[ruleID]
		if !ok {
			r.logger.Warn("unknown insight rule", "rule", ruleID, "question", node.ID)
			continue
		}
		if ins, ok := r.apply(rule, node, answer, bc); ok {
			out = append(out, ins)
		}
	}

	// Conversational nodes carry no analyzable answer; only their
	// explicitly bound rules apply.
	if node.Kind == domain.KindConversation {
		return out
	}

	for _, rule := range r.general {
		if len(rule.AppliesTo) > 0 && !slices.Contains(rule.AppliesTo, node.ID) {
			continue
		}
		if ins, ok := r.apply(rule, node, answer, bc); ok {
			out = append(out, ins)
		}
	}
	return out
}

func (r *Runner) apply(rule Rule, node *domain.QuestionNode, answer domain.Answer, bc domain.BusinessContext) (ins domain.RealTimeInsight, fired bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("insight rule panicked", "rule", rule.ID, "question", node.ID, "panic", rec)
			fired = false
		}
	}()
	if rule.Condition != nil && !rule.Condition(answer, bc) {
		return domain.RealTimeInsight{}, false
	}
	content, recs := rule.Generate(answer, bc)
	if content == "" {
		return domain.RealTimeInsight{}, false
	}
	return domain.RealTimeInsight{
		ID:              r.nextID(),
		Kind:            rule.Kind,
		Content:         content,
		Confidence:      rule.Confidence,
		DataPoints:      []string{node.ID},
		Recommendations: recs,
		Timestamp:       r.now(),
	}, true
}
