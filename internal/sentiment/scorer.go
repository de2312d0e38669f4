// Package sentiment maps cleaned text to a discrete sentiment label with
// a confidence value. Two interchangeable strategies sit behind the
// Scorer interface: a fast signed-lexicon scorer and a VADER-based
// ensemble. The strategy is chosen once at construction, never per call.
package sentiment

import (
	"fmt"

	"redlens/internal/core"
)

// Strategy names accepted by New.
const (
	StrategyLexicon  = "lexicon"
	StrategyEnsemble = "ensemble"
)

// Scorer scores a single text. Implementations never fail: empty or
// non-lexical input yields a neutral result with zero confidence.
// A constructed Scorer is reusable and safe to share across batches.
type Scorer interface {
	Score(text string) core.SentimentResult
}

// New returns the scorer for the named strategy.
func New(strategy string) (Scorer, error) {
	switch strategy {
	case StrategyLexicon, "":
		return NewLexiconScorer(), nil
	case StrategyEnsemble:
		return NewEnsembleScorer(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment strategy %q", strategy)
	}
}
