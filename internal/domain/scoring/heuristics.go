package scoring

// maxHeuristicScore caps the additive rule total.
const maxHeuristicScore = 100

// HeuristicScorer runs the explainable rule set over a hostname's facts.
//
// Rule evaluation order is fixed so that explanation output is deterministic
// for a given input (scoring the same URL twice must yield identical results).
type HeuristicScorer struct {
	rules []Rule
}

// NewHeuristicScorer creates a scorer with the standard rule set.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{
		rules: []Rule{
			NewAgeRule(),
			NewCertificateRule(),
			NewTyposquatRule(),
		},
	}
}

// Score evaluates the rules against the facts and returns the heuristic
// score in [0,100] plus the ordered explanation strings.
//
// List membership short-circuits everything: a hostname on the known-phishing
// list scores a definitive 100 and no other rule can adjust it downward.
func (s *HeuristicScorer) Score(inList bool, f Facts) (int, []string) {
	if inList {
		return maxHeuristicScore, []string{"Hostname found in known phishing list"}
	}

	total := 0
	var reasons []string
	for _, rule := range s.rules {
		sig := rule.Evaluate(f)
		if sig == nil {
			continue
		}
		total += sig.Points
		if sig.Reason != "" {
			reasons = append(reasons, sig.Reason)
		}
	}

	if total > maxHeuristicScore {
		total = maxHeuristicScore
	}
	return total, reasons
}
