package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"redlens/internal/core"
)

func sampleReport() *core.InsightReport {
	return &core.InsightReport{
		ID:                "test-id",
		Subreddit:         "gadgets",
		DocumentsAnalyzed: 3,
		Mode:              "sentiment+themes",
		Timestamp:         time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		ProcessingMS:      42,
		ExecutiveSummary:  "Analysis of 3 recent posts reveals mixed sentiment.",
		Distribution:      core.SentimentDistribution{Positive: 33.3, Neutral: 33.3, Negative: 33.3},
		Themes: []core.Theme{
			{Name: "Battery & Power", Explanation: "Mixed feedback with 2 mentions."},
		},
		Insights: core.ProductInsights{
			Likes:         []string{"Camera quality"},
			Frustrations:  []string{"Battery drain"},
			Improving:     []string{"Update cadence"},
			Worsening:     []string{"Battery & Power"},
			Opportunities: []string{"Battery health dashboard"},
		},
		HighImpactIssues: []core.Issue{
			{Title: "Terrible battery", ImpactScore: 23, Score: 5, Comments: 8, Sentiment: core.LabelNegative},
		},
	}
}

func TestFormatMarkdown_SectionOrder(t *testing.T) {
	out := FormatMarkdown(sampleReport())

	sections := []string{
		"# 📊 Reddit Product Insight Report",
		"## 🔹 Executive Summary",
		"## 🔹 Sentiment Snapshot",
		"## 🔹 Key Themes",
		"## 🔹 Product Insights",
		"## 🔹 High-Impact Issues (Priority)",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		if idx < 0 {
			t.Fatalf("section %q missing from output", section)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestFormatMarkdown_Header(t *testing.T) {
	out := FormatMarkdown(sampleReport())

	for _, want := range []string{
		"**Subreddit:** r/gadgets",
		"**Posts Analyzed:** 3",
		"**Generated:** 2026-08-29",
		"**Processing Time:** 42ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header line %q missing", want)
		}
	}
}

func TestFormatMarkdown_OmitsEmptySections(t *testing.T) {
	report := sampleReport()
	report.Themes = nil
	report.HighImpactIssues = nil
	report.Distribution = core.SentimentDistribution{}

	out := FormatMarkdown(report)
	if strings.Contains(out, "Key Themes") {
		t.Error("empty themes should omit the Key Themes section")
	}
	if strings.Contains(out, "High-Impact Issues") {
		t.Error("no issues should omit the issues section")
	}
	if strings.Contains(out, "Sentiment Snapshot") {
		t.Error("an all-zero distribution should omit the snapshot")
	}
	if strings.Contains(out, "Suggested Action Items") {
		t.Error("no action items should omit the action section")
	}

	// Header, summary and insights survive no matter what.
	for _, want := range []string{"# 📊 Reddit Product Insight Report", "Executive Summary", "Product Insights"} {
		if !strings.Contains(out, want) {
			t.Errorf("%q must always be present", want)
		}
	}
}

func TestFormatMarkdown_ActionItems(t *testing.T) {
	report := sampleReport()
	report.ActionItems = []core.ActionItem{
		{Action: "Profile battery drain", Priority: "High", Team: "Engineering"},
	}

	out := FormatMarkdown(report)
	if !strings.Contains(out, "## 🔹 Suggested Action Items") {
		t.Error("action items section missing")
	}
	if !strings.Contains(out, "- **High** — Profile battery drain (Engineering)") {
		t.Errorf("action item line malformed:\n%s", out)
	}
}

func TestFormatMarkdown_SentimentMarkers(t *testing.T) {
	out := FormatMarkdown(sampleReport())
	if !strings.Contains(out, "🔴 Terrible battery") {
		t.Error("negative issue should carry the red marker")
	}
}

func TestInterpretation_Bands(t *testing.T) {
	cases := []struct {
		name string
		dist core.SentimentDistribution
		want string
	}{
		{"critical", core.SentimentDistribution{Negative: 61}, "Critical"},
		{"warning", core.SentimentDistribution{Negative: 41}, "Warning"},
		{"strong positive", core.SentimentDistribution{Positive: 61}, "Positive:"},
		{"healthy", core.SentimentDistribution{Positive: 41}, "Healthy"},
		{"mixed", core.SentimentDistribution{Positive: 30, Neutral: 40, Negative: 30}, "Mixed"},
		{"boundary 60 negative is warning", core.SentimentDistribution{Negative: 60}, "Warning"},
		{"boundary 40 positive is mixed", core.SentimentDistribution{Positive: 40}, "Mixed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpretation(tc.dist)
			if !strings.Contains(got, tc.want) {
				t.Errorf("Interpretation(%+v) = %q, want it to contain %q", tc.dist, got, tc.want)
			}
		})
	}
}

func TestWriteReportToFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteReportToFile("# report body", dir, "gadgets", "md")
	if err != nil {
		t.Fatal(err)
	}

	wantName := "insight_gadgets_" + time.Now().UTC().Format("2006-01-02") + ".md"
	if filepath.Base(path) != wantName {
		t.Errorf("filename = %q, want %q", filepath.Base(path), wantName)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# report body" {
		t.Errorf("file content = %q", content)
	}
}

func TestWriteReportToFile_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := WriteReportToFile("body", dir, "gadgets", "html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path = %q, want .html extension", path)
	}
}
