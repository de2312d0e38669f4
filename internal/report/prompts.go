package report

import (
	"fmt"
	"strings"

	"redlens/internal/core"
)

// Bounds applied when packing documents into prompts, so a large batch
// cannot blow past the model's context.
const (
	promptMaxDocs         = 12
	promptTitleLength     = 100
	promptBodyLength      = 150
	promptCommentsLength  = 200
	promptSideTitles      = 8
	promptSideTitleLength = 80
	promptThemeNames      = 5
	promptIssues          = 5
	promptIssueThemes     = 3
)

// buildSummaryPrompt packs the top documents, their comment excerpts and
// the sentiment percentages into the executive-summary request.
func buildSummaryPrompt(subreddit string, docs []core.AnalyzedDocument, dist core.SentimentDistribution) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a senior product analyst reviewing Reddit discussions from r/%s.\n\n", subreddit))
	sb.WriteString("POSTS WITH USER DISCUSSIONS:\n")

	for i, doc := range docs {
		if i >= promptMaxDocs {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(doc.Sentiment.Label), truncate(doc.Title, promptTitleLength)))
		if doc.Body != "" {
			sb.WriteString("   Body: " + truncate(doc.Body, promptBodyLength) + "\n")
		}
		if doc.Comments != "" {
			sb.WriteString("   User comments: " + truncate(doc.Comments, promptCommentsLength) + "\n")
		}
	}

	sb.WriteString("\nSENTIMENT BREAKDOWN:\n")
	sb.WriteString(fmt.Sprintf("- Positive: %.1f%%\n", dist.Positive))
	sb.WriteString(fmt.Sprintf("- Neutral: %.1f%%\n", dist.Neutral))
	sb.WriteString(fmt.Sprintf("- Negative: %.1f%%\n", dist.Negative))

	sb.WriteString(`
Based on the posts AND the user comments, write an insightful executive summary (4-5 sentences) that:
1. Identifies the SPECIFIC issues/topics users are actually discussing (not generic themes)
2. Explains WHY users feel the way they do based on their comments
3. Highlights the most critical pain points that need attention
4. Notes any positive aspects users appreciate
5. Provides ONE specific, actionable recommendation

Be very specific - cite actual topics from the posts. Write like a product manager reporting to executives.`)

	return sb.String()
}

// buildInsightsPrompt lists negative and positive titles plus the top
// theme names and requests the categorized JSON breakdown.
func buildInsightsPrompt(docs []core.AnalyzedDocument, themes []core.Theme) string {
	var negTitles, posTitles []string
	for _, doc := range docs {
		switch doc.Sentiment.Label {
		case core.LabelNegative:
			if len(negTitles) < promptSideTitles {
				negTitles = append(negTitles, truncate(doc.Title, promptSideTitleLength))
			}
		case core.LabelPositive:
			if len(posTitles) < promptSideTitles {
				posTitles = append(posTitles, truncate(doc.Title, promptSideTitleLength))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("Analyze these Reddit discussions for product insights:\n\n")

	sb.WriteString("NEGATIVE/FRUSTRATED POSTS:\n")
	writeTitleList(&sb, negTitles)
	sb.WriteString("\nPOSITIVE/SATISFIED POSTS:\n")
	writeTitleList(&sb, posTitles)

	names := themeNames(themes, promptThemeNames)
	sb.WriteString("\nTOP THEMES: " + strings.Join(names, ", ") + "\n")

	sb.WriteString(`
Provide analysis in this exact JSON format:
{
  "likes": ["specific thing users like 1", "specific thing users like 2", "specific thing users like 3"],
  "frustrations": ["specific frustration 1", "specific frustration 2", "specific frustration 3"],
  "improving": ["thing getting better based on posts"],
  "worsening": ["thing getting worse based on posts"],
  "opportunities": ["product improvement opportunity 1", "product improvement opportunity 2"]
}

Be specific - reference actual topics from the posts. Return ONLY valid JSON.`)

	return sb.String()
}

// buildActionItemsPrompt asks for 3-5 structured tasks derived from the
// high-impact issues and top themes.
func buildActionItemsPrompt(issues []core.Issue, themes []core.Theme) string {
	var sb strings.Builder
	sb.WriteString("Based on these high-impact user issues and themes from Reddit:\n\nISSUES:\n")

	for i, issue := range issues {
		if i >= promptIssues {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s (Impact: %.1f)\n", issue.Title, issue.ImpactScore))
	}

	names := themeNames(themes, promptIssueThemes)
	sb.WriteString("\nTHEMES: " + strings.Join(names, ", ") + "\n")

	sb.WriteString(`
Generate 3-5 specific, actionable tasks for the product team.
For each task, provide:
1. Action: The specific thing to do (start with verb)
2. Priority: High/Medium/Low
3. Team: Engineering/Design/Product/Marketing

Provide response in this JSON format:
{
    "items": [
        {"action": "Fix camera crashing bug on startup", "priority": "High", "team": "Engineering"},
        {"action": "Update return policy documentation", "priority": "Medium", "team": "Support"}
    ]
}
Return ONLY valid JSON.`)

	return sb.String()
}

func writeTitleList(sb *strings.Builder, titles []string) {
	if len(titles) == 0 {
		sb.WriteString("- None\n")
		return
	}
	for _, title := range titles {
		sb.WriteString("- " + title + "\n")
	}
}

func themeNames(themes []core.Theme, max int) []string {
	names := make([]string, 0, max)
	for i, theme := range themes {
		if i >= max {
			break
		}
		names = append(names, theme.Name)
	}
	return names
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
