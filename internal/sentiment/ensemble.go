package sentiment

import (
	"math"

	"github.com/jonreiter/govader"

	"redlens/internal/core"
)

const (
	// ensembleThreshold classifies the blended compound score.
	ensembleThreshold = 0.05
	// Primary/secondary blend weights for VADER vs the lexicon polarity.
	primaryWeight   = 0.6
	secondaryWeight = 0.4
)

// EnsembleScorer blends VADER's compound polarity with the lexicon
// scorer's polarity as a second opinion. VADER initialization is done
// once at construction; the scorer is then reusable across batches and
// safe for concurrent runs.
type EnsembleScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
	fallback *LexiconScorer
}

// NewEnsembleScorer creates an ensemble scorer with a freshly
// initialized VADER analyzer.
func NewEnsembleScorer() *EnsembleScorer {
	return &EnsembleScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		fallback: NewLexiconScorer(),
	}
}

// Score blends VADER with the lexicon polarity at a fixed 60/40
// weighting and classifies on the blended compound. An unavailable
// analyzer degrades silently to the lexicon strategy; that is a
// configured fallback, not a failure.
func (s *EnsembleScorer) Score(text string) core.SentimentResult {
	if s.analyzer == nil {
		return s.fallback.Score(text)
	}

	compound := s.analyzer.PolarityScores(text).Compound
	compound = compound*primaryWeight + s.fallback.polarity(text)*secondaryWeight

	label := core.LabelNeutral
	if compound >= ensembleThreshold {
		label = core.LabelPositive
	} else if compound <= -ensembleThreshold {
		label = core.LabelNegative
	}

	return core.SentimentResult{
		Label:      label,
		Confidence: math.Abs(compound),
		RawScore:   compound,
	}
}
