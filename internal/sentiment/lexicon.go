package sentiment

import (
	"math"
	"regexp"
	"strings"

	"redlens/internal/core"
)

const (
	// lexiconThreshold separates positive/negative from neutral on the
	// normalized score. Kept as a named constant; the value has no
	// documented derivation and is tuned, not derived.
	lexiconThreshold = 0.5
	// confidenceScale divides the normalized score into a confidence.
	// The result is not clamped and may exceed 1.0 on strongly worded
	// short texts; callers must not assume an upper bound.
	confidenceScale = 5.0
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// lexicon maps sentiment-bearing words to signed weights. Weights run
// from -4 (strongly negative) to +5 (strongly positive).
var lexicon = map[string]float64{
	// Very positive
	"amazing": 5, "excellent": 5, "perfect": 5, "love": 4, "great": 4,
	"awesome": 4, "fantastic": 5, "wonderful": 4, "best": 4, "impressed": 4,

	// Positive
	"good": 3, "nice": 3, "happy": 3, "helpful": 3, "smooth": 3,
	"fast": 3, "reliable": 3, "solid": 3, "better": 3, "improved": 3,

	// Slightly positive
	"okay": 1, "fine": 1, "decent": 2, "works": 2, "useful": 2,

	// Slightly negative
	"issue": -1, "concern": -1, "confusing": -1, "mediocre": -1,

	// Negative
	"bad": -2, "poor": -2, "problem": -2, "annoying": -2, "disappointed": -3,
	"frustrating": -2, "slow": -2, "laggy": -2, "buggy": -2, "broken": -2,
	"crash": -2, "error": -2, "fail": -2, "failed": -2, "freezing": -2,

	// Very negative
	"terrible": -4, "awful": -4, "horrible": -4, "worst": -4, "hate": -3,
	"useless": -3, "defective": -3, "garbage": -3, "waste": -3, "scam": -4,
}

// LexiconScorer scores text by summing signed word weights and
// normalizing by the square root of the matched-word count, which damps
// the variance of very short texts. It is pure and deterministic.
type LexiconScorer struct{}

// NewLexiconScorer creates a lexicon-based scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// Score classifies text from the fixed lexicon. Never fails.
func (s *LexiconScorer) Score(text string) core.SentimentResult {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	var sum float64
	matched := 0
	for _, word := range words {
		if weight, ok := lexicon[word]; ok {
			sum += weight
			matched++
		}
	}

	var normalized float64
	if matched > 0 {
		normalized = sum / math.Sqrt(float64(matched))
	}

	label := core.LabelNeutral
	if normalized > lexiconThreshold {
		label = core.LabelPositive
	} else if normalized < -lexiconThreshold {
		label = core.LabelNegative
	}

	return core.SentimentResult{
		Label:      label,
		Confidence: math.Abs(normalized) / confidenceScale,
		RawScore:   normalized,
	}
}

// polarity maps the lexicon's unbounded normalized score into [-1, 1]
// so it can serve as the ensemble's second opinion.
func (s *LexiconScorer) polarity(text string) float64 {
	p := s.Score(text).RawScore / confidenceScale
	if p > 1 {
		p = 1
	} else if p < -1 {
		p = -1
	}
	return p
}
