package sentiment

import (
	"math"
	"testing"

	"redlens/internal/core"
)

func TestLexiconScorer_Labels(t *testing.T) {
	s := NewLexiconScorer()

	cases := []struct {
		text string
		want string
	}{
		{"Love this camera, amazing quality", core.LabelPositive},
		{"Terrible battery, crashes constantly, waste of money", core.LabelNegative},
		{"Just unboxed my new phone", core.LabelNeutral},
	}

	for _, tc := range cases {
		got := s.Score(tc.text)
		if got.Label != tc.want {
			t.Errorf("Score(%q).Label = %q, want %q (raw %.2f)", tc.text, got.Label, tc.want, got.RawScore)
		}
	}
}

func TestLexiconScorer_EmptyText(t *testing.T) {
	s := NewLexiconScorer()

	got := s.Score("")
	if got.Label != core.LabelNeutral {
		t.Errorf("Label = %q, want neutral", got.Label)
	}
	if got.RawScore != 0 || got.Confidence != 0 {
		t.Errorf("empty text should score zero, got raw=%.2f conf=%.2f", got.RawScore, got.Confidence)
	}
}

func TestLexiconScorer_Normalization(t *testing.T) {
	s := NewLexiconScorer()

	// Two matched words: "love" (+4) and "amazing" (+5), so the
	// normalized score is 9/sqrt(2).
	got := s.Score("love amazing")
	want := 9.0 / math.Sqrt(2)
	if math.Abs(got.RawScore-want) > 1e-9 {
		t.Errorf("RawScore = %f, want %f", got.RawScore, want)
	}
	if math.Abs(got.Confidence-want/5.0) > 1e-9 {
		t.Errorf("Confidence = %f, want %f", got.Confidence, want/5.0)
	}
}

func TestLexiconScorer_ConfidenceUnclamped(t *testing.T) {
	s := NewLexiconScorer()

	// A short burst of strongly positive words pushes the normalized
	// score well past the confidence scale. The scorer does not clamp.
	got := s.Score("amazing excellent perfect fantastic")
	if got.Confidence <= 1.0 {
		t.Errorf("Confidence = %f, expected > 1 for strongly worded short text", got.Confidence)
	}
}

func TestLexiconScorer_Deterministic(t *testing.T) {
	s := NewLexiconScorer()
	text := "great phone but the battery is terrible"

	first := s.Score(text)
	for i := 0; i < 5; i++ {
		if got := s.Score(text); got != first {
			t.Fatalf("Score is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestLexiconScorer_Polarity(t *testing.T) {
	s := NewLexiconScorer()

	if p := s.polarity("amazing excellent perfect fantastic"); p != 1 {
		t.Errorf("polarity should clamp to 1, got %f", p)
	}
	if p := s.polarity("terrible awful horrible worst"); p != -1 {
		t.Errorf("polarity should clamp to -1, got %f", p)
	}
	if p := s.polarity("just a phone"); p != 0 {
		t.Errorf("polarity of unmatched text = %f, want 0", p)
	}
}

func TestEnsembleScorer_Labels(t *testing.T) {
	s := NewEnsembleScorer()

	cases := []struct {
		text string
		want string
	}{
		{"Love this camera, amazing quality", core.LabelPositive},
		{"Terrible battery, crashes constantly, waste of money", core.LabelNegative},
	}

	for _, tc := range cases {
		got := s.Score(tc.text)
		if got.Label != tc.want {
			t.Errorf("Score(%q).Label = %q, want %q (raw %.3f)", tc.text, got.Label, tc.want, got.RawScore)
		}
	}
}

func TestEnsembleScorer_EmptyText(t *testing.T) {
	s := NewEnsembleScorer()

	got := s.Score("")
	if got.Label != core.LabelNeutral {
		t.Errorf("Label = %q, want neutral", got.Label)
	}
}

func TestEnsembleScorer_NilAnalyzerFallsBack(t *testing.T) {
	s := &EnsembleScorer{fallback: NewLexiconScorer()}

	text := "amazing camera, love the quality"
	got := s.Score(text)
	want := s.fallback.Score(text)
	if got != want {
		t.Errorf("nil analyzer should fall back to the lexicon: got %+v, want %+v", got, want)
	}
}

func TestNew_StrategySelection(t *testing.T) {
	if _, err := New(StrategyLexicon); err != nil {
		t.Errorf("New(lexicon) error: %v", err)
	}
	if _, err := New(StrategyEnsemble); err != nil {
		t.Errorf("New(ensemble) error: %v", err)
	}
	if _, err := New("neural"); err == nil {
		t.Error("New should reject unknown strategies")
	}
}
