// Package render turns a finished insight report into portable output:
// markdown text, an HTML conversion of it, and files on disk.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"redlens/internal/core"
)

// Sentiment interpretation bands keyed on the distribution percentages.
const (
	criticalNegative = 60
	warningNegative  = 40
	strongPositive   = 60
	healthyPositive  = 40
)

// FormatMarkdown renders the report with a fixed section order: header,
// executive summary, sentiment snapshot, key themes, product insights,
// high-impact issues. Sections whose source data is empty are omitted
// entirely; the header and executive summary are always present.
func FormatMarkdown(report *core.InsightReport) string {
	var lines []string

	lines = append(lines,
		"# 📊 Reddit Product Insight Report",
		fmt.Sprintf("**Subreddit:** r/%s", report.Subreddit),
		fmt.Sprintf("**Posts Analyzed:** %d", report.DocumentsAnalyzed),
		fmt.Sprintf("**Mode:** %s", report.Mode),
		fmt.Sprintf("**Generated:** %s", report.Timestamp.Format("2006-01-02")),
		fmt.Sprintf("**Processing Time:** %.0fms", report.ProcessingMS),
		"",
		"---",
		"## 🔹 Executive Summary",
		report.ExecutiveSummary,
		"",
	)

	dist := report.Distribution
	if dist.Positive+dist.Neutral+dist.Negative > 0 {
		lines = append(lines,
			"---",
			"## 🔹 Sentiment Snapshot",
			fmt.Sprintf("- 🟢 Positive: **%.1f%%**", dist.Positive),
			fmt.Sprintf("- ⚪ Neutral: **%.1f%%**", dist.Neutral),
			fmt.Sprintf("- 🔴 Negative: **%.1f%%**", dist.Negative),
			"",
			fmt.Sprintf("*%s*", Interpretation(dist)),
			"",
		)
	}

	if len(report.Themes) > 0 {
		lines = append(lines, "---", "## 🔹 Key Themes")
		for _, theme := range report.Themes {
			lines = append(lines, fmt.Sprintf("- **%s** — %s", theme.Name, theme.Explanation))
		}
		lines = append(lines, "")
	}

	insights := report.Insights
	lines = append(lines, "---", "## 🔹 Product Insights", "", "### ✅ What Users Like")
	for _, item := range insights.Likes {
		lines = append(lines, "- "+item)
	}
	lines = append(lines, "", "### ❌ What Frustrates Users")
	for _, item := range insights.Frustrations {
		lines = append(lines, "- "+item)
	}
	lines = append(lines, "",
		"### 📈 Trends",
		fmt.Sprintf("- **Worsening:** %s", strings.Join(insights.Worsening, ", ")),
		fmt.Sprintf("- **Improving:** %s", strings.Join(insights.Improving, ", ")),
		"",
	)

	if len(report.HighImpactIssues) > 0 {
		lines = append(lines, "---", "## 🔹 High-Impact Issues (Priority)")
		for i, issue := range report.HighImpactIssues {
			lines = append(lines, fmt.Sprintf("**#%d** %s %s", i+1, sentimentMarker(issue.Sentiment), issue.Title))
			lines = append(lines, fmt.Sprintf("   - Score: %d | Comments: %d | Impact: %.0f", issue.Score, issue.Comments, issue.ImpactScore))
		}
		lines = append(lines, "")
	}

	if len(report.ActionItems) > 0 {
		lines = append(lines, "---", "## 🔹 Suggested Action Items")
		for _, item := range report.ActionItems {
			lines = append(lines, fmt.Sprintf("- **%s** — %s (%s)", item.Priority, item.Action, item.Team))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// Interpretation returns the one-line reading of the sentiment split.
// The five bands are mutually exclusive and checked in order.
func Interpretation(dist core.SentimentDistribution) string {
	switch {
	case dist.Negative > criticalNegative:
		return "⚠️ Critical: Community sentiment is heavily negative. Immediate attention required."
	case dist.Negative > warningNegative:
		return "⚠️ Warning: Significant negative sentiment. Product team should investigate issues."
	case dist.Positive > strongPositive:
		return "✅ Positive: Users are generally satisfied. Continue current direction."
	case dist.Positive > healthyPositive:
		return "✅ Healthy: Mostly positive feedback with some areas for improvement."
	default:
		return "ℹ️ Mixed: Varied user experiences. Focus on reducing friction points."
	}
}

func sentimentMarker(label string) string {
	switch label {
	case core.LabelNegative:
		return "🔴"
	case core.LabelPositive:
		return "🟢"
	default:
		return "⚪"
	}
}

// WriteReportToFile writes rendered content into outputDir, creating the
// directory if needed, and returns the written path. The filename embeds
// the subreddit and the run date.
func WriteReportToFile(content, outputDir, subreddit, extension string) (string, error) {
	if outputDir == "" {
		outputDir = "reports"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filename := fmt.Sprintf("insight_%s_%s.%s", subreddit, time.Now().UTC().Format("2006-01-02"), extension)
	filePath := filepath.Join(outputDir, filename)

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}

	return filePath, nil
}
