// Package persona derives a lightweight communication-style profile from
// the conversation history. The profile is advisory: it tunes rendering
// tone, never branching decisions.
package persona

import "github.com/canopyhq/canopy/pkg/domain"

// Average user-message length thresholds (in runes) that select the
// communication style.
const (
	// DirectMaxLen is the threshold below which users are classified as
	// direct communicators.
	DirectMaxLen = 30
	// DetailedMinLen is the threshold above which users are classified
	// as detailed communicators.
	DetailedMinLen = 100
)

// Classifier computes personas from message history. The zero-signal
// defaults for expertise, decision style and urgency are configurable so
// richer upstream signals can override them without touching the
// classifier itself.
type Classifier struct {
	defaultExpertise string
	defaultDecision  string
	defaultUrgency   string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithDefaultExpertise overrides the expertise level assumed in the
// absence of richer signal.
func WithDefaultExpertise(level string) Option {
	return func(c *Classifier) {
		c.defaultExpertise = level
	}
}

// WithDefaultDecisionStyle overrides the assumed decision-making style.
func WithDefaultDecisionStyle(style string) Option {
	return func(c *Classifier) {
		c.defaultDecision = style
	}
}

// WithDefaultUrgency overrides the assumed urgency level.
func WithDefaultUrgency(level string) Option {
	return func(c *Classifier) {
		c.defaultUrgency = level
	}
}

// New creates a Classifier with the standard defaults.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		defaultExpertise: domain.ExpertiseIntermediate,
		defaultDecision:  domain.DecisionDataDriven,
		defaultUrgency:   domain.UrgencyMedium,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify derives a Persona from the ordered message history. The result
// is deterministic for identical input and is meant to be recomputed on
// every turn rather than incrementally updated.
func (c *Classifier) Classify(history []domain.Message) domain.Persona {
	total := 0
	count := 0
	for _, m := range history {
		if m.Role != domain.RoleUser {
			continue
		}
		total += len([]rune(m.Content))
		count++
	}

	style := domain.StyleCasual
	if count > 0 {
		avg := total / count
		switch {
		case avg < DirectMaxLen:
			style = domain.StyleDirect
		case avg > DetailedMinLen:
			style = domain.StyleDetailed
		}
	}

	return domain.Persona{
		CommunicationStyle: style,
		ExpertiseLevel:     c.defaultExpertise,
		DecisionStyle:      c.defaultDecision,
		Urgency:            c.defaultUrgency,
	}
}
