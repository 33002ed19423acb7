package scoring

// Facts bundles the external signals a heuristic rule may consult. Nil
// pointer fields mean the lookup failed or timed out; rules must report that
// as "unknown" rather than treating it as a benign result.
type Facts struct {
	AgeDays          *int
	SSLValid         *bool
	SSLDaysRemaining *int
	MinLevenshtein   int
}

// Signal is one heuristic rule's contribution to the score. A zero-point
// signal with a reason is how a rule reports a missing external fact.
type Signal struct {
	Points int
	Reason string
}

// Rule is a single explainable heuristic check.
//
// This follows the Strategy pattern, allowing each check to be:
//   - Independently developed and tested
//   - Easily added or removed from the scoring pipeline
type Rule interface {
	// Evaluate returns a Signal if the rule has something to say about the
	// facts, nil otherwise (signal checked, found benign).
	Evaluate(f Facts) *Signal

	// Name returns the human-readable name of this rule
	Name() string
}
