// Package clean normalizes raw post text before any scoring happens.
// The cleaning steps run in a fixed order because later patterns assume
// the noise removed by earlier ones is already gone.
package clean

import (
	"regexp"
	"strings"

	"redlens/internal/core"
)

const (
	// MaxBodyLength caps a cleaned body before truncation marking.
	MaxBodyLength = 1000
	// MaxCommentsLength caps the total cleaned comment text per post.
	MaxCommentsLength = 2000
	// TruncationMarker is appended to bodies cut at MaxBodyLength.
	TruncationMarker = "..."
	// commentSeparator joins individual cleaned comments.
	commentSeparator = " | "
	// minTitleLength is the content threshold: shorter titles mark the
	// document as having nothing worth analyzing.
	minTitleLength = 5
)

var (
	urlPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	markdownPattern = regexp.MustCompile("[*_~`#\\[\\]()>|]")
	htmlEntities    = regexp.MustCompile(`(?i)&[a-z]+;|&#\d+;`)
	emojiPattern    = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]+`)
	whitespace      = regexp.MustCompile(`\s+`)

	// Platform-specific noise: edit markers, tl;dr markers, boilerplate
	// sign-offs and disclaimers, source lines, removal markers.
	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bedit\s*\d*\s*:`),
		regexp.MustCompile(`(?i)\btl;?dr:?`),
		regexp.MustCompile(`(?i)thanks for (reading|coming to my ted talk)`),
		regexp.MustCompile(`(?i)obligatory .* disclaimer`),
		regexp.MustCompile(`(?im)^(source|sauce):?\s*`),
		regexp.MustCompile(`(?i)\[removed\]|\[deleted\]`),
	}
)

// Cleaner normalizes post text. It is stateless and safe for concurrent
// use across pipeline runs.
type Cleaner struct{}

// NewCleaner creates a new text cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean normalizes a single text string. Empty input yields empty
// output; Clean never fails.
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	cleaned := urlPattern.ReplaceAllString(text, "")
	cleaned = markdownPattern.ReplaceAllString(cleaned, " ")
	cleaned = htmlEntities.ReplaceAllString(cleaned, " ")
	cleaned = emojiPattern.ReplaceAllString(cleaned, "")
	for _, pattern := range noisePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	cleaned = whitespace.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}

// ProcessDocument cleans a single document and its comments, applies the
// body truncation and comment length caps, and builds the combined text
// with the title counted twice so downstream lexical scoring leans
// toward title content.
func (c *Cleaner) ProcessDocument(doc core.Document) core.CleanedDocument {
	title := c.Clean(doc.Title)
	body := c.Clean(doc.Body)

	if bodyRunes := []rune(body); len(bodyRunes) > MaxBodyLength {
		body = string(bodyRunes[:MaxBodyLength]) + TruncationMarker
	}

	// Comments are kept greedily in order until the total cap would be
	// exceeded; later comments are dropped rather than trimmed.
	var kept []string
	totalLen := 0
	for _, comment := range doc.Comments {
		cleaned := c.Clean(comment)
		if cleaned == "" {
			continue
		}
		length := len([]rune(cleaned))
		if totalLen+length >= MaxCommentsLength {
			continue
		}
		kept = append(kept, cleaned)
		totalLen += length
	}
	comments := strings.Join(kept, commentSeparator)

	combined := strings.TrimSpace(title + " " + title + " " + body + " " + comments)

	return core.CleanedDocument{
		ID:           doc.ID,
		Title:        title,
		Body:         body,
		Comments:     comments,
		Combined:     combined,
		Score:        doc.Score,
		CommentCount: doc.CommentCount,
		CreatedUTC:   doc.CreatedUTC,
		HasContent:   len([]rune(title)) > minTitleLength,
	}
}

// ProcessBatch cleans every document and drops the ones without
// analyzable content. An all-filtered batch returns an empty slice; the
// synthesizer is responsible for turning that into an error.
func (c *Cleaner) ProcessBatch(docs []core.Document) []core.CleanedDocument {
	cleaned := make([]core.CleanedDocument, 0, len(docs))
	for _, doc := range docs {
		processed := c.ProcessDocument(doc)
		if processed.HasContent {
			cleaned = append(cleaned, processed)
		}
	}
	return cleaned
}
