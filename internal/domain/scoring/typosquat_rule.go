package scoring

import "fmt"

const (
	typosquatPoints     = 15
	similarDistance     = 5
	similarDomainPoints = 5
)

// TyposquatRule scores hostname similarity to known brand domains.
type TyposquatRule struct{}

// NewTyposquatRule creates a typosquatting heuristic rule.
func NewTyposquatRule() *TyposquatRule {
	return &TyposquatRule{}
}

// Name returns the rule name
func (r *TyposquatRule) Name() string {
	return "Brand Typosquatting"
}

// Evaluate fires on small edit distances to the brand list. Distance ≤ 3 is
// treated as a likely typosquat; 4–5 as merely similar. The distance is
// always available (computed locally), so there is no unknown branch here.
func (r *TyposquatRule) Evaluate(f Facts) *Signal {
	switch {
	case f.MinLevenshtein <= typoDistanceThreshold:
		return &Signal{
			Points: typosquatPoints,
			Reason: fmt.Sprintf("Hostname within edit distance %d of a known brand domain", f.MinLevenshtein),
		}
	case f.MinLevenshtein <= similarDistance:
		return &Signal{
			Points: similarDomainPoints,
			Reason: fmt.Sprintf("Hostname similar to a known brand domain (edit distance %d)", f.MinLevenshtein),
		}
	}

	return nil
}
