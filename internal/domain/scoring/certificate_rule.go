package scoring

import "fmt"

const (
	invalidCertPoints  = 20
	expiringCertDays   = 30
	expiringCertPoints = 10
)

// CertificateRule scores the state of the site's TLS certificate.
type CertificateRule struct{}

// NewCertificateRule creates a TLS-certificate heuristic rule.
func NewCertificateRule() *CertificateRule {
	return &CertificateRule{}
}

// Name returns the rule name
func (r *CertificateRule) Name() string {
	return "TLS Certificate"
}

// Evaluate flags an invalid certificate, or a valid one that is about to
// expire. The two outcomes are mutually exclusive. A nil validity means the
// certificate check failed or timed out; that is reported as unknown, never
// conflated with "invalid".
func (r *CertificateRule) Evaluate(f Facts) *Signal {
	if f.SSLValid == nil {
		return &Signal{Reason: "Certificate state unknown (TLS check unavailable)"}
	}

	if !*f.SSLValid {
		return &Signal{Points: invalidCertPoints, Reason: "TLS certificate is invalid"}
	}

	if f.SSLDaysRemaining != nil && *f.SSLDaysRemaining < expiringCertDays {
		return &Signal{
			Points: expiringCertPoints,
			Reason: fmt.Sprintf("TLS certificate expires in %d days", *f.SSLDaysRemaining),
		}
	}

	return nil
}
