// Package rank combines engagement counters and sentiment into a single
// comparable impact score and produces the high-impact issue ranking.
package rank

import (
	"sort"

	"redlens/internal/core"
)

// NegativeBonus is added to the impact score of negative documents so
// they are never outranked purely by popularity when engagement is
// comparable. The flat value is tuned, not derived.
const NegativeBonus = 10

// ComputeImpact attaches sentiment results to cleaned documents and
// stamps each with its impact score. The returned slice preserves input
// order.
func ComputeImpact(docs []core.CleanedDocument, sentiments []core.SentimentResult) []core.AnalyzedDocument {
	analyzed := make([]core.AnalyzedDocument, 0, len(docs))
	for i, doc := range docs {
		s := sentiments[i]
		impact := float64(doc.Score + doc.CommentCount)
		if s.Label == core.LabelNegative {
			impact += NegativeBonus
		}
		analyzed = append(analyzed, core.AnalyzedDocument{
			CleanedDocument: doc,
			Sentiment:       s,
			ImpactScore:     impact,
		})
	}
	return analyzed
}

// TopIssues returns the top-n documents by impact score descending as
// report issues. The sort must be stable: impact collisions are common
// with small engagement counts and ties keep original input order.
func TopIssues(docs []core.AnalyzedDocument, n int) []core.Issue {
	sorted := make([]core.AnalyzedDocument, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].ImpactScore > sorted[b].ImpactScore
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	issues := make([]core.Issue, 0, n)
	for _, doc := range sorted[:n] {
		issues = append(issues, core.Issue{
			Title:       truncate(doc.Title, 100),
			ImpactScore: doc.ImpactScore,
			Score:       doc.Score,
			Comments:    doc.CommentCount,
			Sentiment:   doc.Sentiment.Label,
		})
	}
	return issues
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
