package nlp

// Per-signal bonuses applied on top of the classifier confidence.
const (
	entitySlotBonus       = 0.1
	priorInteractionBonus = 0.1
)

// ComposeConfidence combines the classifier confidence with entity density
// and user-context signals into one bounded score.
//
// This is an additive heuristic, not a calibrated probability: each non-empty
// entity slot adds a fixed bonus, returning users add one more, and the sum
// is capped at 1.0. Its only guaranteed property is monotonicity in the
// inputs.
func ComposeConfidence(intentConfidence float64, entities EntityBundle, signal ContextSignal) float64 {
	confidence := intentConfidence
	confidence += entitySlotBonus * float64(entities.NonEmptySlots())
	if signal.PriorInteractions > 0 {
		confidence += priorInteractionBonus
	}

	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}
