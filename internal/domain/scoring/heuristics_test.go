package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestAgeRule(t *testing.T) {
	rule := NewAgeRule()

	tests := []struct {
		name       string
		age        *int
		wantPoints int
		wantReason bool
	}{
		{"Very young domain", intPtr(10), 20, true},
		{"Edge of young bucket", intPtr(29), 20, true},
		{"Under a year", intPtr(30), 10, true},
		{"Edge of year bucket", intPtr(364), 10, true},
		{"Established domain is benign and silent", intPtr(3650), 0, false},
		{"Unknown age reports zero points with a reason", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := rule.Evaluate(Facts{AgeDays: tt.age, MinLevenshtein: 10})
			if !tt.wantReason && tt.wantPoints == 0 {
				assert.Nil(t, sig)
				return
			}
			require.NotNil(t, sig)
			assert.Equal(t, tt.wantPoints, sig.Points)
			assert.NotEmpty(t, sig.Reason)
		})
	}
}

func TestCertificateRule(t *testing.T) {
	rule := NewCertificateRule()

	t.Run("Invalid certificate", func(t *testing.T) {
		sig := rule.Evaluate(Facts{SSLValid: boolPtr(false)})
		require.NotNil(t, sig)
		assert.Equal(t, 20, sig.Points)
	})

	t.Run("Valid but expiring soon", func(t *testing.T) {
		sig := rule.Evaluate(Facts{SSLValid: boolPtr(true), SSLDaysRemaining: intPtr(12)})
		require.NotNil(t, sig)
		assert.Equal(t, 10, sig.Points)
	})

	t.Run("Valid with plenty of runway is silent", func(t *testing.T) {
		sig := rule.Evaluate(Facts{SSLValid: boolPtr(true), SSLDaysRemaining: intPtr(200)})
		assert.Nil(t, sig)
	})

	t.Run("Unknown state is reported, not treated as invalid", func(t *testing.T) {
		sig := rule.Evaluate(Facts{})
		require.NotNil(t, sig)
		assert.Equal(t, 0, sig.Points)
		assert.Contains(t, sig.Reason, "unknown")
	})
}

func TestTyposquatRule(t *testing.T) {
	rule := NewTyposquatRule()

	tests := []struct {
		name       string
		distance   int
		wantPoints int
	}{
		{"Exact brand match still flags", 0, 15},
		{"Close typosquat", 3, 15},
		{"Merely similar", 5, 5},
		{"Unrelated domain", 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := rule.Evaluate(Facts{MinLevenshtein: tt.distance})
			if tt.wantPoints == 0 {
				assert.Nil(t, sig)
				return
			}
			require.NotNil(t, sig)
			assert.Equal(t, tt.wantPoints, sig.Points)
		})
	}
}

func TestHeuristicScorer_ListMembershipShortCircuits(t *testing.T) {
	scorer := NewHeuristicScorer()

	// Facts that would score 0 on their own: the list branch is definitive.
	score, reasons := scorer.Score(true, Facts{MinLevenshtein: 10})
	assert.Equal(t, 100, score)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "known phishing list")
}

func TestHeuristicScorer_AccumulatesIndependentRules(t *testing.T) {
	scorer := NewHeuristicScorer()

	// Age 10 days (+20), invalid cert (+20), edit distance 2 (+15) = 55.
	score, reasons := scorer.Score(false, Facts{
		AgeDays:        intPtr(10),
		SSLValid:       boolPtr(false),
		MinLevenshtein: 2,
	})
	assert.Equal(t, 55, score)
	assert.Len(t, reasons, 3)
}

func TestHeuristicScorer_UnknownSignalsContributeZero(t *testing.T) {
	scorer := NewHeuristicScorer()

	score, reasons := scorer.Score(false, Facts{MinLevenshtein: 10})
	assert.Equal(t, 0, score)

	// Both missing signals must still be visible in the explanations.
	joined := ""
	for _, r := range reasons {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "Domain age unknown")
	assert.Contains(t, joined, "Certificate state unknown")
}

func TestHeuristicScorer_ScoreStaysInRange(t *testing.T) {
	scorer := NewHeuristicScorer()

	score, _ := scorer.Score(false, Facts{
		AgeDays:        intPtr(1),
		SSLValid:       boolPtr(false),
		MinLevenshtein: 0,
	})
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}
