// Package core defines the shared data model that flows through the
// analysis pipeline. Each stage consumes records from the previous stage
// and returns freshly allocated ones; nothing here is mutated in place
// once produced.
package core

import "time"

// Sentiment labels assigned by the scorers.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Document is a raw social-media post as delivered by the retrieval
// layer. Immutable once fetched.
type Document struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Comments     []string `json:"comments"`      // Ordered comment bodies, may be empty
	Score        int      `json:"score"`         // Net vote score, may be negative
	CommentCount int      `json:"comment_count"` // Reported comment total, not len(Comments)
	CreatedUTC   float64  `json:"created_utc"`
}

// CleanedDocument is a Document after text normalization.
type CleanedDocument struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`    // Cleaned title
	Body         string  `json:"body"`     // Cleaned body, truncated
	Comments     string  `json:"comments"` // Cleaned comments joined with " | ", length-capped
	Combined     string  `json:"combined"` // Title twice + body + comments, for 2x title weighting
	Score        int     `json:"score"`
	CommentCount int     `json:"comment_count"`
	CreatedUTC   float64 `json:"created_utc"`
	HasContent   bool    `json:"has_content"` // len(Title) > 5 after cleaning
}

// SentimentResult is the outcome of scoring a single text.
// Label is a deterministic function of RawScore under the thresholds of
// the strategy that produced it.
type SentimentResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // May exceed 1.0 for the lexicon strategy
	RawScore   float64 `json:"raw_score"`
}

// AnalyzedDocument is a CleanedDocument with sentiment and impact attached.
type AnalyzedDocument struct {
	CleanedDocument
	Sentiment   SentimentResult `json:"sentiment"`
	ImpactScore float64         `json:"impact_score"`
}

// Theme moods assigned by the theme extractor.
const (
	MoodPositive = "positive"
	MoodNegative = "negative"
	MoodMixed    = "mixed"
	MoodNeutral  = "neutral"
)

// Theme aggregates keyword hits for one taxonomy entry across the corpus.
type Theme struct {
	Name        string   `json:"name"`
	Count       int      `json:"count"` // Total keyword hits, not document count
	Mood        string   `json:"mood"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"` // Up to 2 titles, first-seen order, 70 chars max
}

// ProductInsights holds the categorized findings of a report. Every list
// carries at least one entry; empty categories are filled with a fixed
// placeholder before the report is assembled.
type ProductInsights struct {
	Likes         []string `json:"likes"`
	Frustrations  []string `json:"frustrations"`
	Improving     []string `json:"improving"`
	Worsening     []string `json:"worsening"`
	Opportunities []string `json:"opportunities"`
}

// Issue is one entry of the high-impact ranking.
type Issue struct {
	Title       string  `json:"title"`
	ImpactScore float64 `json:"impact_score"`
	Score       int     `json:"score"`
	Comments    int     `json:"comments"`
	Sentiment   string  `json:"sentiment"`
}

// ActionItem is one AI-suggested task for the product team.
type ActionItem struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Team     string `json:"team"`
}

// SentimentDistribution holds per-label percentages rounded to one
// decimal. Percentages sum to 100 within rounding, or are all zero when
// no documents were analyzed.
type SentimentDistribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// InsightReport is the complete result of one pipeline run. Created once
// by the synthesizer and immutable thereafter.
type InsightReport struct {
	ID                string                `json:"id"`
	Subreddit         string                `json:"subreddit"`
	DocumentsAnalyzed int                   `json:"documents_analyzed"`
	Mode              string                `json:"mode"`
	Timestamp         time.Time             `json:"timestamp"`
	ProcessingMS      float64               `json:"processing_time_ms"`
	ExecutiveSummary  string                `json:"executive_summary"`
	Distribution      SentimentDistribution `json:"sentiment_distribution"`
	Themes            []Theme               `json:"themes"`
	Insights          ProductInsights       `json:"product_insights"`
	HighImpactIssues  []Issue               `json:"high_impact_issues"`
	AIEnhanced        bool                  `json:"ai_enhanced"`
	ActionItems       []ActionItem          `json:"action_items,omitempty"`
}
