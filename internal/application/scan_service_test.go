package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/domain/scoring"
	"github.com/phishguard/phishguard/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgeLookup struct {
	age int
	err error
}

func (s *stubAgeLookup) AgeInDays(ctx context.Context, hostname string) (int, error) {
	return s.age, s.err
}

type stubCertLookup struct {
	info ports.CertificateInfo
	err  error
}

func (s *stubCertLookup) Check(ctx context.Context, hostname string) (ports.CertificateInfo, error) {
	return s.info, s.err
}

type stubGeoLookup struct {
	country string
	err     error
}

func (s *stubGeoLookup) CountryCode(ctx context.Context, hostname string) (string, error) {
	return s.country, s.err
}

func testEngine(t *testing.T, known ...string) *scoring.Engine {
	t.Helper()
	extractor := scoring.NewExtractor(
		scoring.DefaultPhishingKeywords,
		scoring.DefaultBrandDomains,
		domain.NewHostnameSet(known),
	)
	scaler := domain.ScalerParams{
		Mins: make([]float64, domain.FeatureArity),
		Maxs: []float64{200, 6, 40, 9, 180, 1, 1},
	}
	engine, err := scoring.NewEngine(extractor, scoring.NewHeuristicScorer(), scaler, nil)
	require.NoError(t, err)
	return engine
}

func newService(t *testing.T, age ports.DomainAgeLookup, certs ports.CertificateLookup, geo ports.GeoLocator, known ...string) *ScanService {
	t.Helper()
	return NewScanService(testEngine(t, known...), age, certs, geo, time.Second)
}

func TestCheck_UnparsableURL(t *testing.T) {
	svc := newService(t, &stubAgeLookup{}, &stubCertLookup{}, &stubGeoLookup{})

	_, err := svc.Check(context.Background(), ":::garbage:::")
	assert.ErrorIs(t, err, ErrUnparsableURL)
}

func TestCheck_AllFactsResolved(t *testing.T) {
	svc := newService(t,
		&stubAgeLookup{age: 3650},
		&stubCertLookup{info: ports.CertificateInfo{Valid: true, DaysRemaining: 120}},
		&stubGeoLookup{country: "US"},
	)

	result, err := svc.Check(context.Background(), "https://intranet.example-corp.org")
	require.NoError(t, err)

	require.NotNil(t, result.Heuristics.AgeDays)
	assert.Equal(t, 3650, *result.Heuristics.AgeDays)
	require.NotNil(t, result.Heuristics.SSLValid)
	assert.True(t, *result.Heuristics.SSLValid)
	require.NotNil(t, result.Heuristics.SSLDaysRemaining)
	assert.Equal(t, 120, *result.Heuristics.SSLDaysRemaining)
	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, "low", result.RiskTier)
}

func TestCheck_FailedLookupDegradesToUnknown(t *testing.T) {
	// Certificate lookup times out: sslValid must come back null, not
	// false, and must contribute nothing to the score.
	svc := newService(t,
		&stubAgeLookup{age: 3650},
		&stubCertLookup{err: errors.New("connection timed out")},
		&stubGeoLookup{err: errors.New("no A records")},
	)

	result, err := svc.Check(context.Background(), "https://intranet.example-corp.org")
	require.NoError(t, err)

	assert.Nil(t, result.Heuristics.SSLValid, "failed lookup must be null, never false")
	assert.Nil(t, result.Heuristics.SSLDaysRemaining)
	assert.Equal(t, 0, result.RiskScore)

	var sawUnknown bool
	for _, e := range result.Explanation {
		if e == "Certificate state unknown (TLS check unavailable)" {
			sawUnknown = true
		}
	}
	assert.True(t, sawUnknown, "missing signal must be reported as unknown")
}

func TestCheck_KnownPhishingURL(t *testing.T) {
	svc := newService(t,
		&stubAgeLookup{err: errors.New("whois down")},
		&stubCertLookup{err: errors.New("tls down")},
		&stubGeoLookup{err: errors.New("dns down")},
		"malicious-phish.suspicious",
	)

	result, err := svc.Check(context.Background(), "http://malicious-phish.suspicious")
	require.NoError(t, err)

	assert.True(t, result.IsPhishing)
	assert.Equal(t, 100, result.RiskScore)
	assert.Contains(t, result.Explanation[0], "known phishing list")
}
