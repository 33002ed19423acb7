package application

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/domain/scoring"
	"github.com/phishguard/phishguard/internal/ports"
)

// ErrUnparsableURL is returned when no hostname at all can be derived from
// the input. It is the only user-visible request failure; everything else
// degrades to a missing signal.
var ErrUnparsableURL = errors.New("could not parse URL")

// ScanService orchestrates one scoring request: resolve the external facts
// concurrently, then hand everything to the scoring engine.
//
// Error handling strategy:
//   - Each external lookup gets a single attempt with its own timeout
//   - A lookup failure degrades that one signal to unknown and is logged;
//     it never aborts the request
type ScanService struct {
	engine        *scoring.Engine
	age           ports.DomainAgeLookup
	certs         ports.CertificateLookup
	geo           ports.GeoLocator
	lookupTimeout time.Duration
}

// NewScanService creates a scan service with dependency injection.
func NewScanService(
	engine *scoring.Engine,
	age ports.DomainAgeLookup,
	certs ports.CertificateLookup,
	geo ports.GeoLocator,
	lookupTimeout time.Duration,
) *ScanService {
	return &ScanService{
		engine:        engine,
		age:           age,
		certs:         certs,
		geo:           geo,
		lookupTimeout: lookupTimeout,
	}
}

// Check scores a raw URL and returns the full verdict.
func (s *ScanService) Check(ctx context.Context, rawURL string) (domain.ScoreResult, error) {
	rec := domain.NewURLRecord(rawURL)
	if rec.Hostname == "" {
		return domain.ScoreResult{}, ErrUnparsableURL
	}

	facts := s.gatherFacts(ctx, rec.Hostname)
	result := s.engine.Score(ctx, rec, facts)

	if result.RiskTier == "high" {
		log.Printf("🚨 HIGH RISK URL: %s (score %d, listed=%t)",
			rec.Hostname, result.RiskScore, result.Heuristics.InList)
	}
	return result, nil
}

// gatherFacts runs the three external lookups in parallel, each bounded by
// the configured timeout. Requests don't wait on each other: the slowest
// lookup, not the sum, bounds the added latency.
func (s *ScanService) gatherFacts(ctx context.Context, hostname string) scoring.ExternalFacts {
	var (
		wg    sync.WaitGroup
		facts scoring.ExternalFacts
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
		age, err := s.age.AgeInDays(lctx, hostname)
		if err != nil {
			log.Printf("domain age lookup failed for %s: %v", hostname, err)
			return
		}
		facts.AgeDays = &age
	}()

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
		info, err := s.certs.Check(lctx, hostname)
		if err != nil {
			log.Printf("certificate check failed for %s: %v", hostname, err)
			return
		}
		facts.SSLValid = &info.Valid
		facts.SSLDaysRemaining = &info.DaysRemaining
	}()

	go func() {
		defer wg.Done()
		lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
		country, err := s.geo.CountryCode(lctx, hostname)
		if err != nil {
			// Geo misses are routine; the UN sentinel covers them.
			return
		}
		facts.Country = country
	}()

	wg.Wait()
	return facts
}
