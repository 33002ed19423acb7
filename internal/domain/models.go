package domain

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/idna"
)

// FeatureArity is the number of slots in a FeatureVector. It is part of the
// contract with the offline-trained classifier: the scaler and the model both
// index features by position, so a mismatch here is a fatal configuration
// error, never a silent truncation.
const FeatureArity = 7

// Feature slot positions. Order matters: the scaler parameters and the model
// weights were fitted against vectors laid out exactly like this.
const (
	FeatureLength = iota
	FeatureDotCount
	FeatureSpecialChars
	FeatureKeywordCount
	FeatureCountryCode
	FeatureTypoFlag
	FeatureInListFlag
)

// FeatureVector is an ordered, fixed-arity sequence of numeric URL features.
type FeatureVector []float64

// Named returns the vector as a name → value mapping for presentation.
// The names mirror the columns the training pipeline exports.
func (v FeatureVector) Named() map[string]float64 {
	if len(v) != FeatureArity {
		return nil
	}
	return map[string]float64{
		"length":        v[FeatureLength],
		"subdomains":    v[FeatureDotCount],
		"specialChars":  v[FeatureSpecialChars],
		"keywordCount":  v[FeatureKeywordCount],
		"countryNum":    v[FeatureCountryCode],
		"typoSquatting": v[FeatureTypoFlag],
		"inListFlag":    v[FeatureInListFlag],
	}
}

// URLRecord is the scoring input: the raw URL after scheme normalization and
// the hostname derived from it. Hostname extraction never fails; unparseable
// input yields an empty hostname, which downstream stages treat as a
// missing-signal case rather than an error.
type URLRecord struct {
	Raw      string
	Hostname string
}

// NewURLRecord normalizes a raw URL string and derives its hostname.
//
// Scheme normalization happens exactly once, here: if the input carries no
// scheme, "http://" is prefixed. Every later stage (feature extraction,
// heuristics, the model) sees the same normalized string, so the length
// feature stays consistent across code paths.
func NewURLRecord(raw string) URLRecord {
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	rec := URLRecord{Raw: raw}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return rec
	}

	host := strings.ToLower(u.Hostname())
	// Unicode hostnames are mapped to their punycode form so that list
	// membership and edit-distance comparisons operate on ASCII labels.
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	// url.Parse is lenient about junk in the authority; anything that does
	// not look like a hostname counts as unparseable input.
	if !validHostname(host) {
		return rec
	}
	rec.Hostname = host
	return rec
}

func validHostname(host string) bool {
	if host == "" {
		return false
	}
	for i := 0; i < len(host); i++ {
		b := host[i]
		switch {
		case b >= 'a' && b <= 'z':
		case b >= '0' && b <= '9':
		case b == '.' || b == '-' || b == '_':
		default:
			return false
		}
	}
	return true
}

// ScalerParams holds per-feature min/max bounds fitted by the offline
// training process. Immutable for the lifetime of the process.
type ScalerParams struct {
	Mins []float64 `json:"mins"`
	Maxs []float64 `json:"maxs"`
}

// HeuristicResult carries the raw facts the heuristic scorer saw. Nil pointer
// fields mean "signal unavailable", which is distinct from a benign outcome
// and must survive through to presentation.
type HeuristicResult struct {
	InList           bool  `json:"inList"`
	AgeDays          *int  `json:"ageDays"`
	SSLValid         *bool `json:"sslValid"`
	SSLDaysRemaining *int  `json:"sslDaysRemaining"`
	MinLevenshtein   int   `json:"minLevenshtein"`
}

// ModelResult is the classifier's contribution to a verdict. All fields are
// nil when the model is unavailable and fusion fell back to heuristics only.
type ModelResult struct {
	Prob     *float64           `json:"mlProb"`
	Risk     *int               `json:"mlRisk"`
	Features map[string]float64 `json:"mlFeatures"`
}

// ScoreResult is the final output of a scoring request. It is constructed
// fresh per request, never cached or mutated, and is purely derived from the
// input URL plus the immutable shared configuration.
type ScoreResult struct {
	ID          uuid.UUID       `json:"id"`
	URL         string          `json:"url"`
	Hostname    string          `json:"hostname"`
	IsPhishing  bool            `json:"isPhishing"`
	RiskScore   int             `json:"riskScore"`
	RiskTier    string          `json:"riskTier"`
	Heuristics  HeuristicResult `json:"heuristics"`
	ML          ModelResult     `json:"ml"`
	Explanation []string        `json:"explanation"`
}

// RiskTier converts a risk score to a categorical tier for presentation.
// A known-list match is always "high" regardless of the numeric score.
func RiskTier(score int, inList bool) string {
	switch {
	case inList || score >= 70:
		return "high"
	case score >= 30:
		return "medium"
	default:
		return "low"
	}
}
