package scoring

import (
	"testing"

	"github.com/phishguard/phishguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(known ...string) *Extractor {
	return NewExtractor(DefaultPhishingKeywords, DefaultBrandDomains, domain.NewHostnameSet(known))
}

func TestExtract_FeatureValues(t *testing.T) {
	e := newTestExtractor("malicious-phish.suspicious")

	rec := domain.NewURLRecord("http://secure-login.example.com/verify")
	v := e.Extract(rec, "")

	require.Len(t, v, domain.FeatureArity)
	assert.Equal(t, 38.0, v[domain.FeatureLength], "length of the normalized URL")
	assert.Equal(t, 2.0, v[domain.FeatureDotCount], "dots in hostname only")
	assert.Equal(t, 7.0, v[domain.FeatureSpecialChars], ":// - .. /")
	assert.Equal(t, 3.0, v[domain.FeatureKeywordCount], "secure, login, verify")
	assert.Equal(t, 163.0, v[domain.FeatureCountryCode], "UN sentinel when country unresolved")
	assert.Equal(t, 0.0, v[domain.FeatureTypoFlag])
	assert.Equal(t, 0.0, v[domain.FeatureInListFlag])
}

func TestExtract_Flags(t *testing.T) {
	e := newTestExtractor("malicious-phish.suspicious")

	listed := e.Extract(domain.NewURLRecord("http://malicious-phish.suspicious"), "")
	assert.Equal(t, 1.0, listed[domain.FeatureInListFlag])

	typo := e.Extract(domain.NewURLRecord("http://paypa1.com"), "")
	assert.Equal(t, 1.0, typo[domain.FeatureTypoFlag], "edit distance 1 to paypal.com")
}

func TestExtract_KeywordCountedOncePerKeyword(t *testing.T) {
	e := newTestExtractor()

	v := e.Extract(domain.NewURLRecord("http://x.test/login/login/LOGIN"), "")
	assert.Equal(t, 1.0, v[domain.FeatureKeywordCount], "repeats of one keyword count once")
}

func TestExtract_NeverFailsOnMalformedInput(t *testing.T) {
	e := newTestExtractor()

	rec := domain.NewURLRecord(":::garbage:::")
	require.Empty(t, rec.Hostname)

	v := e.Extract(rec, "")
	require.Len(t, v, domain.FeatureArity)
	assert.Equal(t, 0.0, v[domain.FeatureDotCount], "empty hostname has no dots")
	assert.Equal(t, 0.0, v[domain.FeatureInListFlag])
}

func TestCountryCodeValue(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"UN", 163},
		{"", 163}, // empty falls back to the sentinel
		{"US", 168},
		{"BR", 148},
		{"AS", 148}, // documented collision with BR
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, countryCodeValue(tt.code))
		})
	}
}
