package scoring

import (
	"fmt"

	"github.com/phishguard/phishguard/internal/domain"
)

// normalizeEpsilon guards against a degenerate zero-width feature range.
const normalizeEpsilon = 1e-6

// ValidateScaler checks that the scaler parameters agree with the feature
// arity. Called once at startup; a mismatch means the scaler was fitted for a
// different feature layout and serving with it would silently misnormalize.
func ValidateScaler(scaler domain.ScalerParams) error {
	if len(scaler.Mins) != domain.FeatureArity || len(scaler.Maxs) != domain.FeatureArity {
		return fmt.Errorf("scaler shape mismatch: got mins=%d maxs=%d, want %d per side",
			len(scaler.Mins), len(scaler.Maxs), domain.FeatureArity)
	}
	return nil
}

// Normalize rescales a raw feature vector with the fitted min/max bounds:
// (raw[i] - mins[i]) / (maxs[i] - mins[i] + ε).
//
// No clamping is applied. Values outside the training range may leave the
// unit interval; callers must not assume a strict [0,1] bound.
func Normalize(raw domain.FeatureVector, scaler domain.ScalerParams) domain.FeatureVector {
	out := make(domain.FeatureVector, len(raw))
	for i, v := range raw {
		out[i] = (v - scaler.Mins[i]) / (scaler.Maxs[i] - scaler.Mins[i] + normalizeEpsilon)
	}
	return out
}
