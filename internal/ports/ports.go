package ports

import "context"

// Classifier is the narrow contract for the trained phishing model: a
// normalized feature vector in, a probability out. Keeping it this small lets
// the fusion logic be tested with a deterministic stub instead of real model
// weights.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// CertificateInfo is the outcome of a TLS certificate check.
type CertificateInfo struct {
	Valid         bool
	DaysRemaining int
}

// DomainAgeLookup resolves how many days ago a domain was registered.
// Implementations must honor the context deadline; the caller treats any
// error as "signal unavailable", not as a request failure.
type DomainAgeLookup interface {
	AgeInDays(ctx context.Context, hostname string) (int, error)
}

// CertificateLookup checks the TLS certificate presented by a host.
type CertificateLookup interface {
	Check(ctx context.Context, hostname string) (CertificateInfo, error)
}

// GeoLocator resolves the 2-letter ISO country code a hostname appears to be
// served from. Errors and misses both degrade to the "UN" sentinel upstream.
type GeoLocator interface {
	CountryCode(ctx context.Context, hostname string) (string, error)
}

// DomainListStore persists and loads the aggregated known-phishing domain
// set. The feed updater writes through it; the server reads it once at
// startup.
type DomainListStore interface {
	SaveDomains(ctx context.Context, domains []string) error
	LoadDomains(ctx context.Context) ([]string, error)
	Close() error
}
