package domain

// BusinessContext accumulates everything learned about a business during
// one session. Responses map question IDs to the submitted answer; the
// summary fields are populated opportunistically from answer content.
// A context belongs to exactly one session and is never shared.
type BusinessContext struct {
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	GrowthStage string `json:"growth_stage,omitempty"`

	Responses map[string]Answer `json:"responses"`
}

// NewBusinessContext returns an empty context.
func NewBusinessContext() BusinessContext {
	return BusinessContext{Responses: make(map[string]Answer)}
}

// Merge returns a copy of the context with the answer written under the
// question ID (overwriting any prior value). The receiver is not mutated,
// which keeps merges replayable and trivially testable.
func (c BusinessContext) Merge(questionID string, answer Answer) BusinessContext {
	next := c
	next.Responses = make(map[string]Answer, len(c.Responses)+1)
	for k, v := range c.Responses {
		next.Responses[k] = v
	}
	next.Responses[questionID] = answer
	return next
}

// Copy returns a deep copy of the context.
func (c BusinessContext) Copy() BusinessContext {
	next := c
	next.Responses = make(map[string]Answer, len(c.Responses))
	for k, v := range c.Responses {
		next.Responses[k] = v
	}
	return next
}

// Answered reports whether the question has a recorded answer.
func (c BusinessContext) Answered(questionID string) bool {
	_, ok := c.Responses[questionID]
	return ok
}

// Answer returns the recorded answer for a question.
func (c BusinessContext) Answer(questionID string) (Answer, bool) {
	a, ok := c.Responses[questionID]
	return a, ok
}

// NumericAnswer returns the numeric reading of a recorded answer.
func (c BusinessContext) NumericAnswer(questionID string) (float64, bool) {
	a, ok := c.Responses[questionID]
	if !ok {
		return 0, false
	}
	return a.AsNumber()
}
