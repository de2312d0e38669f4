// Package report orchestrates the full analysis pipeline and assembles
// the final insight report. It owns the fallback discipline between
// generative augmentation and deterministic synthesis: every AI-assisted
// output has a deterministic, always-available equivalent, and an
// augmentation failure never aborts the pipeline.
package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"redlens/internal/clean"
	"redlens/internal/core"
	"redlens/internal/logger"
	"redlens/internal/rank"
	"redlens/internal/sentiment"
	"redlens/internal/themes"
)

const (
	// minAISummaryLength is the shortest generative summary worth
	// keeping; anything shorter falls through to the deterministic path.
	minAISummaryLength = 50

	// Token budgets per generative call.
	summaryMaxTokens     = 400
	insightsMaxTokens    = 400
	actionItemsMaxTokens = 300
)

// Category placeholders keep every insight list non-empty; the renderer
// assumes at least one entry per category.
const (
	placeholderLikes         = "No strongly positive posts in this sample"
	placeholderFrustrations  = "No significant frustrations detected"
	placeholderWorsening     = "No clear worsening trends detected"
	placeholderImproving     = "No clear improving trends detected"
	placeholderOpportunities = "Increase sample size for better opportunity detection"
)

// Generator is the optional generative capability injected into the
// synthesizer. An empty string or an error both mean the augmentation is
// unavailable; the synthesizer never distinguishes why.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int32) (string, error)
}

// Options configures a Synthesizer.
type Options struct {
	Mode      string        // Theme extraction runs when this contains "themes"
	TopIssues int           // High-impact ranking size; defaults to 3
	Generator Generator     // Nil disables all augmentation
	Timeout   time.Duration // Per generative call; defaults to 60s
}

// Synthesizer runs the pipeline over one document batch per call. A
// constructed Synthesizer is reusable across batches.
type Synthesizer struct {
	cleaner   *clean.Cleaner
	scorer    sentiment.Scorer
	extractor *themes.Extractor
	generator Generator
	mode      string
	topIssues int
	timeout   time.Duration
}

// NewSynthesizer creates a synthesizer around the given scorer.
func NewSynthesizer(scorer sentiment.Scorer, opts Options) *Synthesizer {
	if opts.TopIssues <= 0 {
		opts.TopIssues = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Synthesizer{
		cleaner:   clean.NewCleaner(),
		scorer:    scorer,
		extractor: themes.NewExtractor(),
		generator: opts.Generator,
		mode:      opts.Mode,
		topIssues: opts.TopIssues,
		timeout:   opts.Timeout,
	}
}

// SynthesizeReport runs the fixed pipeline sequence over a batch and
// returns the immutable report. Only core.ErrNoTarget and
// core.ErrEmptyResult can be returned; augmentation failures are
// absorbed on the deterministic path.
func (s *Synthesizer) SynthesizeReport(ctx context.Context, subreddit string, docs []core.Document) (*core.InsightReport, error) {
	start := time.Now()

	if strings.TrimSpace(subreddit) == "" {
		return nil, core.ErrNoTarget
	}

	cleaned := s.cleaner.ProcessBatch(docs)
	if len(cleaned) == 0 {
		return nil, core.ErrEmptyResult
	}

	sentiments := make([]core.SentimentResult, len(cleaned))
	for i, doc := range cleaned {
		sentiments[i] = s.scorer.Score(doc.Combined)
	}
	analyzed := rank.ComputeImpact(cleaned, sentiments)

	dist := Distribution(analyzed)

	var themeList []core.Theme
	if strings.Contains(s.mode, "themes") {
		themeList = s.extractor.Extract(analyzed)
	}

	issues := rank.TopIssues(analyzed, s.topIssues)
	summary := s.ExecutiveSummary(ctx, subreddit, analyzed, themeList, dist)
	insights := s.ProductInsights(ctx, analyzed, themeList)

	var actionItems []core.ActionItem
	if s.generator != nil {
		actionItems = s.ActionItems(ctx, issues, themeList)
	}

	return &core.InsightReport{
		ID:                uuid.NewString(),
		Subreddit:         subreddit,
		DocumentsAnalyzed: len(analyzed),
		Mode:              s.mode,
		Timestamp:         time.Now().UTC(),
		ProcessingMS:      float64(time.Since(start).Microseconds()) / 1000.0,
		ExecutiveSummary:  summary,
		Distribution:      dist,
		Themes:            themeList,
		Insights:          insights,
		HighImpactIssues:  issues,
		AIEnhanced:        len(actionItems) > 0,
		ActionItems:       actionItems,
	}, nil
}

// Distribution computes the per-label percentage split rounded to one
// decimal. An empty batch yields all zeros; emptiness is normally caught
// upstream, this is defensive.
func Distribution(docs []core.AnalyzedDocument) core.SentimentDistribution {
	if len(docs) == 0 {
		return core.SentimentDistribution{}
	}

	counts := map[string]int{}
	for _, doc := range docs {
		counts[doc.Sentiment.Label]++
	}

	total := float64(len(docs))
	return core.SentimentDistribution{
		Positive: round1(float64(counts[core.LabelPositive]) / total * 100),
		Neutral:  round1(float64(counts[core.LabelNeutral]) / total * 100),
		Negative: round1(float64(counts[core.LabelNegative]) / total * 100),
	}
}

// ExecutiveSummary produces the report's narrative. The generative path
// is tried first when configured and its output accepted only above a
// minimum length; otherwise a templated multi-sentence summary is
// composed from the strongest signals in the batch.
func (s *Synthesizer) ExecutiveSummary(ctx context.Context, subreddit string, docs []core.AnalyzedDocument, themeList []core.Theme, dist core.SentimentDistribution) string {
	if len(docs) == 0 {
		return "No posts available for analysis."
	}

	if s.generator != nil {
		if summary := s.generate(ctx, buildSummaryPrompt(subreddit, docs, dist), summaryMaxTokens); len(summary) > minAISummaryLength {
			return summary
		}
	}

	var parts []string

	// Sentiment headline: three mutually exclusive templates.
	total := len(docs)
	switch {
	case dist.Negative > 50:
		parts = append(parts, fmt.Sprintf("Analysis of %d recent posts reveals predominantly negative sentiment (%.0f%%), indicating widespread user concerns.", total, dist.Negative))
	case dist.Positive > 50:
		parts = append(parts, fmt.Sprintf("Analysis of %d recent posts shows generally positive sentiment (%.0f%%), reflecting user satisfaction.", total, dist.Positive))
	default:
		parts = append(parts, fmt.Sprintf("Analysis of %d recent posts reveals mixed sentiment (Positive: %.0f%%, Neutral: %.0f%%, Negative: %.0f%%).", total, dist.Positive, dist.Neutral, dist.Negative))
	}

	if len(themeList) > 0 {
		parts = append(parts, "Key discussion areas include "+strings.Join(themeNames(themeList, 3), ", ")+".")
	}

	if top, ok := topBy(docs, core.LabelNegative, func(d core.AnalyzedDocument) float64 { return d.ImpactScore }); ok {
		parts = append(parts, fmt.Sprintf("Notable concerns include: \"%s...\"", truncate(top.Title, 60)))
	}

	if top, ok := topBy(docs, core.LabelPositive, func(d core.AnalyzedDocument) float64 { return float64(d.Score) }); ok {
		parts = append(parts, fmt.Sprintf("Users appreciate certain aspects, as shown in: \"%s...\"", truncate(top.Title, 50)))
	}

	mostCommented := docs[0]
	for _, doc := range docs[1:] {
		if doc.CommentCount > mostCommented.CommentCount {
			mostCommented = doc
		}
	}
	parts = append(parts, fmt.Sprintf("The most engaged discussions have %d+ comments, indicating high community interest in these topics.", mostCommented.CommentCount))

	return strings.Join(parts, " ")
}

// ProductInsights builds the categorized findings. The deterministic
// baseline always exists; when a generator is configured its structured
// response fully replaces the baseline on a successful parse, otherwise
// the baseline wins - there is no partial merge.
func (s *Synthesizer) ProductInsights(ctx context.Context, docs []core.AnalyzedDocument, themeList []core.Theme) core.ProductInsights {
	baseline := deterministicInsights(docs, themeList)

	if s.generator == nil {
		return baseline
	}

	response := s.generate(ctx, buildInsightsPrompt(docs, themeList), insightsMaxTokens)
	parsed, ok := parseInsights(response)
	if !ok {
		if response != "" {
			logger.Warn("AI insights response not parseable, keeping deterministic baseline")
		}
		return baseline
	}

	return fillPlaceholders(parsed)
}

// ActionItems requests structured tasks from the generator. Parse or
// provider failure yields an empty list, never an error.
func (s *Synthesizer) ActionItems(ctx context.Context, issues []core.Issue, themeList []core.Theme) []core.ActionItem {
	if s.generator == nil {
		return nil
	}
	response := s.generate(ctx, buildActionItemsPrompt(issues, themeList), actionItemsMaxTokens)
	return parseActionItems(response)
}

// generate performs one bounded generative call. Errors and empty
// responses are collapsed into "": an augmentation failure is a soft
// condition logged and absorbed here, never propagated.
func (s *Synthesizer) generate(ctx context.Context, prompt string, maxTokens int32) string {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(callCtx, prompt, maxTokens)
	if err != nil {
		logger.Warn("generative call failed, continuing on deterministic path", "error", err.Error())
		return ""
	}
	return strings.TrimSpace(text)
}

// deterministicInsights composes the rule-based baseline from document
// rankings and theme moods.
func deterministicInsights(docs []core.AnalyzedDocument, themeList []core.Theme) core.ProductInsights {
	var positive, negative []core.AnalyzedDocument
	for _, doc := range docs {
		switch doc.Sentiment.Label {
		case core.LabelPositive:
			positive = append(positive, doc)
		case core.LabelNegative:
			negative = append(negative, doc)
		}
	}

	sort.SliceStable(positive, func(a, b int) bool { return positive[a].Score > positive[b].Score })
	sort.SliceStable(negative, func(a, b int) bool { return negative[a].ImpactScore > negative[b].ImpactScore })

	insights := core.ProductInsights{}
	for i, doc := range positive {
		if i >= 3 {
			break
		}
		insights.Likes = append(insights.Likes, truncate(doc.Title, 100))
	}
	for i, doc := range negative {
		if i >= 3 {
			break
		}
		insights.Frustrations = append(insights.Frustrations, truncate(doc.Title, 100))
	}

	for _, theme := range themeList {
		switch theme.Mood {
		case core.MoodNegative:
			insights.Worsening = append(insights.Worsening, theme.Name)
		case core.MoodPositive:
			insights.Improving = append(insights.Improving, theme.Name)
		}
	}

	return fillPlaceholders(insights)
}

// fillPlaceholders guarantees at least one entry per category.
func fillPlaceholders(insights core.ProductInsights) core.ProductInsights {
	if len(insights.Likes) == 0 {
		insights.Likes = []string{placeholderLikes}
	}
	if len(insights.Frustrations) == 0 {
		insights.Frustrations = []string{placeholderFrustrations}
	}
	if len(insights.Worsening) == 0 {
		insights.Worsening = []string{placeholderWorsening}
	}
	if len(insights.Improving) == 0 {
		insights.Improving = []string{placeholderImproving}
	}
	if len(insights.Opportunities) == 0 {
		insights.Opportunities = []string{placeholderOpportunities}
	}
	return insights
}

// topBy returns the document with the given label maximizing key, if any.
func topBy(docs []core.AnalyzedDocument, label string, key func(core.AnalyzedDocument) float64) (core.AnalyzedDocument, bool) {
	var best core.AnalyzedDocument
	found := false
	for _, doc := range docs {
		if doc.Sentiment.Label != label {
			continue
		}
		if !found || key(doc) > key(best) {
			best = doc
			found = true
		}
	}
	return best, found
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
