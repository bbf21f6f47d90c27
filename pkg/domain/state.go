package domain

// ConversationState is the aggregate root for one session. It is created
// on first contact with a session ID, mutated once per processed answer,
// and retained until the session is archived elsewhere.
type ConversationState struct {
	SessionID string `json:"session_id"`

	// Phase is advisory metadata; the enforced invariant is that it only
	// moves forward (see Phase.Later).
	Phase Phase `json:"phase"`

	Context BusinessContext `json:"context"`
	Persona Persona         `json:"persona"`

	// History is the ordered list of exchanged messages.
	History []Message `json:"history"`

	// ActiveQuestionID identifies the question currently awaiting an
	// answer. Empty once the graph is exhausted.
	ActiveQuestionID string `json:"active_question_id,omitempty"`

	Insights []RealTimeInsight `json:"insights"`

	// Progress is a percentage in [0,100]; it never decreases across
	// turns of the same session.
	Progress int `json:"progress"`
}

// NewConversationState creates a fresh state positioned at the given
// entry question.
func NewConversationState(sessionID, entryQuestionID string) *ConversationState {
	return &ConversationState{
		SessionID:        sessionID,
		Phase:            PhaseIntroduction,
		Context:          NewBusinessContext(),
		ActiveQuestionID: entryQuestionID,
	}
}

// Clone returns a deep copy of the state so pipeline stages can build the
// next snapshot without mutating what callers already hold.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	next := *s
	next.Context = s.Context.Copy()
	next.History = append([]Message(nil), s.History...)
	next.Insights = append([]RealTimeInsight(nil), s.Insights...)
	return &next
}

// TurnResult is what one processed answer yields back to the boundary
// layer.
type TurnResult struct {
	State           *ConversationState `json:"state"`
	NextQuestion    *QuestionNode      `json:"next_question,omitempty"`
	NewInsights     []RealTimeInsight  `json:"new_insights"`
	RenderedMessage string             `json:"rendered_message"`
}

// AnswerRecord is one persisted raw answer.
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	Answer     Answer `json:"answer"`
	Timestamp  int64  `json:"timestamp"`
}

// SessionRecords is everything the durable store holds for one session.
// State is nil when answers were saved but no state snapshot exists yet
// (a turn that failed between saveAnswer and saveState leaves the session
// in this resumable shape).
type SessionRecords struct {
	State    *ConversationState `json:"state,omitempty"`
	Answers  map[string]Answer  `json:"answers"`
	Messages []Message          `json:"messages"`
	Insights []RealTimeInsight  `json:"insights"`
}
