// Package insight evaluates rule-based generators against each new
// answer and the accumulated business context, producing real-time
// insight records. Rules are data-driven and side-effect free; a failing
// rule never takes the pipeline down with it.
package insight

import "github.com/canopyhq/canopy/pkg/domain"

// Per-rule confidence values. Confidence is a static property of a rule,
// not a computed quantity; tests assert against these constants.
const (
	ConfidencePattern     = 0.8
	ConfidenceOpportunity = 0.7
	ConfidenceRisk        = 0.75
	ConfidenceBenchmark   = 0.75
	ConfidenceTrend       = 0.65
	ConfidenceEngagement  = 0.8
	ConfidenceAdvantage   = 0.85
)

// Rule is one insight generator. Condition decides whether the rule
// fires for the just-submitted answer; Generate produces the insight
// content and optional recommendations. Both receive the answer and the
// already-merged context and must be pure.
type Rule struct {
	ID         string
	Kind       domain.InsightKind
	Confidence float64

	// NodeBound rules only run when a QuestionNode names them in its
	// InsightRules list; general rules run on every (non-conversation)
	// answer.
	NodeBound bool

	// AppliesTo restricts a general rule to specific question IDs.
	// Empty means the rule may fire on any answer.
	AppliesTo []string

	Condition func(answer domain.Answer, bc domain.BusinessContext) bool
	Generate  func(answer domain.Answer, bc domain.BusinessContext) (content string, recommendations []string)
}
