package scoring

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/ports"
)

// Fusion constants. The weights and the verdict cutoff were fixed when the
// model was trained and validated; they are named here so they live in one
// place, but changing them is a model-compatibility decision, not a tweak.
const (
	heuristicWeight = 0.6
	modelWeight     = 0.4
	phishingCutoff  = 50
)

// ExternalFacts are the already-resolved collaborator signals for one
// request. Nil fields mean the corresponding lookup was unavailable.
type ExternalFacts struct {
	AgeDays          *int
	SSLValid         *bool
	SSLDaysRemaining *int
	Country          string
}

// Engine is the risk-scoring core: feature extraction, heuristic rules,
// normalization, model inference and score fusion behind one call.
//
// All of its state is immutable after construction, so a single Engine is
// shared by concurrent requests without locking.
type Engine struct {
	extractor  *Extractor
	heuristics *HeuristicScorer
	scaler     domain.ScalerParams
	classifier ports.Classifier // nil when the model failed to load
}

// NewEngine wires the scoring core together. classifier may be nil, in which
// case every score degrades to heuristics only. The scaler shape is validated
// here: serving with a mismatched scaler would silently corrupt every model
// input, so that is a fatal configuration error.
func NewEngine(extractor *Extractor, heuristics *HeuristicScorer, scaler domain.ScalerParams, classifier ports.Classifier) (*Engine, error) {
	if err := ValidateScaler(scaler); err != nil {
		return nil, fmt.Errorf("invalid scaler configuration: %w", err)
	}
	return &Engine{
		extractor:  extractor,
		heuristics: heuristics,
		scaler:     scaler,
		classifier: classifier,
	}, nil
}

// Score produces the full verdict for a normalized URL record and its
// external facts. It never fails: records with an empty hostname are scored
// on whatever signals remain, and a classifier error degrades that one
// request to heuristics only.
func (e *Engine) Score(ctx context.Context, rec domain.URLRecord, facts ExternalFacts) domain.ScoreResult {
	inList := e.extractor.InKnownList(rec.Hostname)
	minLev := e.extractor.MinBrandDistance(rec.Hostname)

	ruleFacts := Facts{
		AgeDays:          facts.AgeDays,
		SSLValid:         facts.SSLValid,
		SSLDaysRemaining: facts.SSLDaysRemaining,
		MinLevenshtein:   minLev,
	}
	heuristicScore, explanation := e.heuristics.Score(inList, ruleFacts)

	raw := e.extractor.Extract(rec, facts.Country)
	ml, mlReasons := e.runModel(ctx, raw)
	explanation = append(explanation, mlReasons...)

	final := fuse(heuristicScore, ml.Risk)
	if inList {
		// List membership is definitive: the model never argues it down.
		final = maxHeuristicScore
	}

	return domain.ScoreResult{
		ID:         uuid.New(),
		URL:        rec.Raw,
		Hostname:   rec.Hostname,
		IsPhishing: inList || final > phishingCutoff,
		RiskScore:  final,
		RiskTier:   domain.RiskTier(final, inList),
		Heuristics: domain.HeuristicResult{
			InList:           inList,
			AgeDays:          facts.AgeDays,
			SSLValid:         facts.SSLValid,
			SSLDaysRemaining: facts.SSLDaysRemaining,
			MinLevenshtein:   minLev,
		},
		ML:          ml,
		Explanation: explanation,
	}
}

// runModel normalizes the raw vector and asks the classifier for a phishing
// probability. Any failure yields an unavailable ModelResult plus the reason
// for the explanation trail; it never aborts the request.
func (e *Engine) runModel(ctx context.Context, raw domain.FeatureVector) (domain.ModelResult, []string) {
	if e.classifier == nil {
		return domain.ModelResult{}, []string{"ML model unavailable; score based on heuristics only"}
	}

	norm := Normalize(raw, e.scaler)
	prob, err := e.classifier.Predict(ctx, norm)
	if err != nil {
		log.Printf("classifier prediction failed: %v", err)
		return domain.ModelResult{}, []string{"ML model unavailable; score based on heuristics only"}
	}

	risk := int(math.Round(prob * 100))
	return domain.ModelResult{
		Prob:     &prob,
		Risk:     &risk,
		Features: raw.Named(),
	}, []string{fmt.Sprintf("ML risk: %d%%", risk)}
}

// fuse blends the heuristic score with the model risk using the fixed
// 0.6/0.4 weighting. Without a model risk the heuristic score passes through
// unchanged.
func fuse(heuristicScore int, modelRisk *int) int {
	if modelRisk == nil {
		return heuristicScore
	}
	return int(math.Round(float64(heuristicScore)*heuristicWeight + float64(*modelRisk)*modelWeight))
}
