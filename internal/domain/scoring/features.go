package scoring

import (
	"strings"

	"github.com/phishguard/phishguard/internal/domain"
)

// DefaultPhishingKeywords are the lure words counted by the keyword feature.
// The list is frozen: the shipped model was trained against exactly these.
var DefaultPhishingKeywords = []string{
	"login", "secure", "account", "verify", "bank",
	"password", "update", "free", "click",
}

// DefaultBrandDomains are the high-value domains used for typosquatting
// detection, both as a heuristic and as the typo feature slot.
var DefaultBrandDomains = []string{
	"google.com", "facebook.com", "paypal.com", "amazon.com", "bankofamerica.com",
}

// unknownCountry is the sentinel ISO code used when geolocation fails.
const unknownCountry = "UN"

// typoDistanceThreshold is the edit distance at or below which a hostname is
// flagged as a likely typosquat of a brand domain.
const typoDistanceThreshold = 3

// Extractor derives the fixed-arity feature vector a URL is scored on.
// It holds only immutable configuration and is safe for concurrent use.
type Extractor struct {
	keywords []string
	brands   []string
	known    *domain.HostnameSet
}

// NewExtractor creates a feature extractor over the given keyword list, brand
// domains and known-phishing set.
func NewExtractor(keywords, brands []string, known *domain.HostnameSet) *Extractor {
	return &Extractor{keywords: keywords, brands: brands, known: known}
}

// Extract computes the 7-slot feature vector for a normalized URL record.
//
// It never fails: a record with an empty hostname still produces a vector,
// with the host-derived slots degraded (zero dots, list flag false, typo flag
// computed against the empty string). country is the already-resolved 2-letter
// ISO code, or "" / "UN" when the geo lookup yielded nothing.
//
// The computation rules must match the training pipeline exactly; changing
// any of them invalidates the shipped scaler and model.
func (e *Extractor) Extract(rec domain.URLRecord, country string) domain.FeatureVector {
	v := make(domain.FeatureVector, domain.FeatureArity)

	v[domain.FeatureLength] = float64(len([]rune(rec.Raw)))
	v[domain.FeatureDotCount] = float64(strings.Count(rec.Hostname, "."))
	v[domain.FeatureSpecialChars] = float64(countSpecialChars(rec.Raw))
	v[domain.FeatureKeywordCount] = float64(e.countKeywords(rec.Raw))
	v[domain.FeatureCountryCode] = float64(countryCodeValue(country))

	if e.MinBrandDistance(rec.Hostname) <= typoDistanceThreshold {
		v[domain.FeatureTypoFlag] = 1
	}
	if e.known.Contains(rec.Hostname) {
		v[domain.FeatureInListFlag] = 1
	}

	return v
}

// MinBrandDistance returns the minimum edit distance between the hostname and
// the brand-domain list. Exposed because the heuristic typosquatting rule
// reports the same number.
func (e *Extractor) MinBrandDistance(hostname string) int {
	return minBrandDistance(hostname, e.brands)
}

// InKnownList reports whether the hostname is in the known-phishing set.
func (e *Extractor) InKnownList(hostname string) bool {
	return e.known.Contains(hostname)
}

// countKeywords counts how many keywords occur in the URL, case-insensitive.
// Each keyword contributes at most 1 no matter how often it repeats.
func (e *Extractor) countKeywords(rawURL string) int {
	lower := strings.ToLower(rawURL)
	n := 0
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// countSpecialChars counts characters that are not ASCII letters or digits.
func countSpecialChars(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			n++
		}
	}
	return n
}

// countryCodeValue encodes a 2-letter ISO country code as the sum of its
// character codes, with "UN" standing in when the lookup failed.
//
// Known weakness: the encoding is coarse and collision-prone ("BR" and "AS"
// encode identically) and carries no ordering semantics. It is preserved
// as-is because the shipped model was trained on it.
func countryCodeValue(code string) int {
	if code == "" {
		code = unknownCountry
	}
	sum := 0
	for i := 0; i < len(code); i++ {
		sum += int(code[i])
	}
	return sum
}
