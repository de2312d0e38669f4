// Package themes extracts recurring product themes by matching cleaned
// documents against a fixed keyword taxonomy and classifying each
// theme's mood from the sentiment of the documents that mention it.
package themes

import (
	"fmt"
	"sort"
	"strings"

	"redlens/internal/core"
)

const (
	// maxThemes caps the returned list.
	maxThemes = 6
	// maxExamples caps example titles per theme.
	maxExamples = 2
	// exampleTitleLength truncates example titles.
	exampleTitleLength = 70
	// moodFraction is the document-share a label needs to dominate a
	// theme's mood.
	moodFraction = 0.5
)

// taxonomyEntry pairs a theme name with its keyword set. The slice order
// is the tie-break order for equal mention counts.
type taxonomyEntry struct {
	name     string
	keywords []string
}

// taxonomy is the fixed, read-only theme vocabulary. Loaded once, never
// mutated, safe to share across concurrent runs.
var taxonomy = []taxonomyEntry{
	{"Battery & Power", []string{
		"battery", "charge", "charging", "drain", "power", "sot",
		"fast charging", "wireless charging", "dead", "percentage",
	}},
	{"Camera & Photography", []string{
		"camera", "photo", "picture", "lens", "zoom", "portrait",
		"night sight", "video", "recording", "selfie", "megapixel",
	}},
	{"Software & Updates", []string{
		"update", "android", "software", "bug", "patch", "fix",
		"feature", "app", "version", "beta", "stable",
	}},
	{"Hardware Quality", []string{
		"screen", "display", "build", "quality", "glass", "speaker",
		"fingerprint", "crack", "scratch", "durable", "design",
	}},
	{"Performance", []string{
		"performance", "fast", "slow", "lag", "smooth", "heat",
		"overheating", "hot", "throttle", "ram", "memory", "speed",
	}},
	{"Customer Support", []string{
		"support", "warranty", "rma", "repair", "replacement",
		"refund", "return", "google", "response", "shipping",
	}},
	{"Connectivity", []string{
		"wifi", "bluetooth", "signal", "network", "5g", "lte",
		"connection", "drop", "esim", "carrier", "cellular",
	}},
}

// tally accumulates per-theme state while scanning the corpus.
type tally struct {
	count    int
	labels   map[string]int
	examples []string
}

// Extractor matches documents against the taxonomy. Stateless; safe for
// concurrent reuse.
type Extractor struct{}

// NewExtractor creates a theme extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns up to 6 themes sorted by mention count descending,
// ties kept in taxonomy order. Matching runs over title and body only;
// comments are deliberately excluded so a single chatty thread cannot
// dominate the theme ranking.
func (e *Extractor) Extract(docs []core.AnalyzedDocument) []core.Theme {
	tallies := make([]tally, len(taxonomy))
	for i := range tallies {
		tallies[i].labels = make(map[string]int)
	}

	for _, doc := range docs {
		text := strings.ToLower(doc.Title + " " + doc.Body)

		for i, entry := range taxonomy {
			matches := 0
			for _, keyword := range entry.keywords {
				if strings.Contains(text, keyword) {
					matches++
				}
			}
			if matches == 0 {
				continue
			}

			tallies[i].count += matches
			tallies[i].labels[doc.Sentiment.Label]++
			if len(tallies[i].examples) < maxExamples {
				tallies[i].examples = append(tallies[i].examples, truncate(doc.Title, exampleTitleLength))
			}
		}
	}

	var themes []core.Theme
	for i, entry := range taxonomy {
		t := tallies[i]
		if t.count == 0 {
			continue
		}

		mood, explanation := classifyMood(t)
		themes = append(themes, core.Theme{
			Name:        entry.name,
			Count:       t.count,
			Mood:        mood,
			Explanation: explanation,
			Examples:    t.examples,
		})
	}

	sort.SliceStable(themes, func(a, b int) bool {
		return themes[a].Count > themes[b].Count
	})

	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}

// classifyMood derives the theme mood from the per-label document tally
// and builds the templated explanation sentence for it.
func classifyMood(t tally) (string, string) {
	total := 0
	for _, n := range t.labels {
		total += n
	}

	// Keyword hits without any tallied documents cannot happen in
	// practice but must not crash.
	if total == 0 {
		return core.MoodNeutral, fmt.Sprintf("%d mentions in discussions.", t.count)
	}

	negFraction := float64(t.labels[core.LabelNegative]) / float64(total)
	posFraction := float64(t.labels[core.LabelPositive]) / float64(total)

	switch {
	case negFraction > moodFraction:
		return core.MoodNegative, fmt.Sprintf("Predominantly negative (%d%%). Users expressing frustration.", int(negFraction*100))
	case posFraction > moodFraction:
		return core.MoodPositive, fmt.Sprintf("Mostly positive (%d%%). Users are satisfied.", int(posFraction*100))
	default:
		return core.MoodMixed, fmt.Sprintf("Mixed feedback with %d mentions.", t.count)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
