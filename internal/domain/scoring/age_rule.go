package scoring

import "fmt"

// Domain age buckets. Freshly registered domains are a strong phishing
// signal; anything younger than a year still earns a smaller bump.
const (
	youngDomainDays    = 30
	youngDomainPoints  = 20
	newishDomainDays   = 365
	newishDomainPoints = 10
)

// AgeRule scores the registration age of the domain.
type AgeRule struct{}

// NewAgeRule creates a domain-age heuristic rule.
func NewAgeRule() *AgeRule {
	return &AgeRule{}
}

// Name returns the rule name
func (r *AgeRule) Name() string {
	return "Domain Age"
}

// Evaluate applies the age buckets. The buckets are mutually exclusive: only
// the first matching one fires. A nil age means the WHOIS lookup failed and
// is reported as unknown with zero points.
func (r *AgeRule) Evaluate(f Facts) *Signal {
	if f.AgeDays == nil {
		return &Signal{Reason: "Domain age unknown (WHOIS lookup unavailable)"}
	}

	age := *f.AgeDays
	switch {
	case age < youngDomainDays:
		return &Signal{
			Points: youngDomainPoints,
			Reason: fmt.Sprintf("Domain registered only %d days ago", age),
		}
	case age < newishDomainDays:
		return &Signal{
			Points: newishDomainPoints,
			Reason: fmt.Sprintf("Domain less than a year old (%d days)", age),
		}
	}

	return nil
}
