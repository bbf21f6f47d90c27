package domain

// Communication styles derived from message patterns.
const (
	StyleDirect   = "direct"
	StyleDetailed = "detailed"
	StyleCasual   = "casual"
	StyleFormal   = "formal"
)

// Expertise levels.
const (
	ExpertiseBeginner     = "beginner"
	ExpertiseIntermediate = "intermediate"
	ExpertiseExpert       = "expert"
)

// Decision-making styles.
const (
	DecisionDataDriven    = "data_driven"
	DecisionIntuitive     = "intuitive"
	DecisionCollaborative = "collaborative"
)

// Urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Persona is a derived, non-authoritative snapshot of how the user
// communicates. It is recomputed from message history on every turn and
// regenerated rather than diffed; it carries no identity of its own.
type Persona struct {
	CommunicationStyle string `json:"communication_style"`
	ExpertiseLevel     string `json:"expertise_level"`
	DecisionStyle      string `json:"decision_style"`
	Urgency            string `json:"urgency"`
}
