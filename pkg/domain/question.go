package domain

// QuestionKind constants define how a question collects its answer.
const (
	// KindConversation is an open conversational prompt (free engagement).
	KindConversation = "conversation"
	// KindSingleChoice selects exactly one option value.
	KindSingleChoice = "single_choice"
	// KindFreeText collects free text (or a number typed as text).
	KindFreeText = "free_text"
	// KindRanking collects an ordered list of option values.
	KindRanking = "ranking"
	// KindConditional is a single choice whose options route to follow-up
	// questions.
	KindConditional = "conditional"
)

// QuestionOption is one selectable value of a choice question. An option
// may name follow-up question IDs that take priority over the sequential
// flow when the option is selected.
type QuestionOption struct {
	Value       string   `json:"value" yaml:"value"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	FollowUps   []string `json:"follow_ups,omitempty" yaml:"follow_ups,omitempty"`
}

// QuestionNode is one immutable entry of the question catalog.
// Nodes are defined once at startup and never mutated at runtime, so
// concurrent lookups from many sessions are always safe.
type QuestionNode struct {
	ID     string `json:"id" yaml:"id"`
	Kind   string `json:"kind" yaml:"kind"`
	Prompt string `json:"prompt" yaml:"prompt"`

	// Options is the ordered list of selectable values (choice kinds) or
	// rankable items (ranking kind).
	Options []QuestionOption `json:"options,omitempty" yaml:"options,omitempty"`

	// Position orders the sequential flow. Unique per catalog.
	Position int `json:"position" yaml:"position"`

	// Required nodes count toward progress.
	Required bool `json:"required" yaml:"required"`

	// FollowUpOnly nodes are skipped by the sequential fallback and are
	// only reachable through an option's follow-up list.
	FollowUpOnly bool `json:"follow_up_only,omitempty" yaml:"follow_up_only,omitempty"`

	// InsightRules names the rule IDs bound to this node. Rules run when
	// the node is answered, before the general-purpose pass.
	InsightRules []string `json:"insight_rules,omitempty" yaml:"insight_rules,omitempty"`
}

// Option returns the option with the given value, if any.
func (q *QuestionNode) Option(value string) (QuestionOption, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return QuestionOption{}, false
}
