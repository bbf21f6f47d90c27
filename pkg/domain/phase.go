package domain

// Phase is the coarse stage of a conversation. Sessions only ever move
// forward through phases.
type Phase string

const (
	PhaseIntroduction Phase = "introduction"
	PhaseDiscovery    Phase = "discovery"
	PhaseDeepDive     Phase = "deep_dive"
	PhaseSynthesis    Phase = "synthesis"
	PhaseCompletion   Phase = "completion"
)

var phaseRank = map[Phase]int{
	PhaseIntroduction: 0,
	PhaseDiscovery:    1,
	PhaseDeepDive:     2,
	PhaseSynthesis:    3,
	PhaseCompletion:   4,
}

// Rank returns the ordinal of the phase. Unknown phases rank lowest.
func (p Phase) Rank() int {
	return phaseRank[p]
}

// Valid reports whether p is one of the five known phases.
func (p Phase) Valid() bool {
	_, ok := phaseRank[p]
	return ok
}

// Later returns whichever of the two phases is further along. Used to
// clamp transitions so a session can never move backward.
func (p Phase) Later(other Phase) Phase {
	if other.Rank() > p.Rank() {
		return other
	}
	return p
}

// PhaseForProgress derives the advisory phase from the progress
// percentage. Callers may still set a later phase explicitly; the derived
// value is a floor, not an override.
func PhaseForProgress(progress int) Phase {
	switch {
	case progress <= 0:
		return PhaseIntroduction
	case progress < 40:
		return PhaseDiscovery
	case progress < 75:
		return PhaseDeepDive
	case progress < 100:
		return PhaseSynthesis
	default:
		return PhaseCompletion
	}
}
