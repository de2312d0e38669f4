package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"redlens/internal/config"
	"redlens/internal/core"
	"redlens/internal/llm"
	"redlens/internal/logger"
	"redlens/internal/reddit"
	"redlens/internal/render"
	"redlens/internal/report"
	"redlens/internal/sentiment"
)

var (
	analyzeLimit    int
	analyzeComments int
	analyzeMode     string
	analyzeStrategy string
	analyzeAI       bool
	analyzeTop      int
	analyzeOutput   string
	analyzeHTML     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <subreddit>",
	Short: "Analyze a subreddit and write a product-insight report",
	Long: `Fetch recent posts from the given subreddit (without the r/ prefix),
run the analysis pipeline and write the insight report to the output
directory. The report is also printed to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 25, "number of posts to fetch (1-100)")
	analyzeCmd.Flags().IntVar(&analyzeComments, "comments", 5, "comments to fetch per post (0-50)")
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", "sentiment+themes", "analysis mode; theme extraction runs when it contains \"themes\"")
	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "lexicon", "sentiment strategy: lexicon or ensemble")
	analyzeCmd.Flags().BoolVar(&analyzeAI, "ai", false, "enable generative-model enrichment (requires GEMINI_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 3, "number of high-impact issues to rank")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "reports", "output directory for the report")
	analyzeCmd.Flags().BoolVar(&analyzeHTML, "html", false, "also write an HTML rendering of the report")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return core.ErrNoTarget
	}
	subreddit := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)

	scorer, err := sentiment.New(cfg.Analysis.Strategy)
	if err != nil {
		return err
	}

	var generator report.Generator
	if cfg.Gemini.Enabled {
		client, err := llm.NewClient(cfg.Gemini.Model)
		if err != nil {
			logger.Warn("generative model unavailable, running deterministic-only", "error", err.Error())
		} else {
			generator = client
			logger.Info("generative enrichment enabled", "model", cfg.Gemini.Model)
		}
	}

	ctx := context.Background()

	fetcher := reddit.NewClient(cfg.RedditTimeout())
	logger.Info("fetching posts", "subreddit", subreddit, "limit", cfg.Reddit.Limit)
	docs, err := fetcher.FetchPosts(ctx, subreddit, cfg.Reddit.Limit, cfg.Reddit.CommentsPerPost)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return core.ErrEmptyResult
	}

	synth := report.NewSynthesizer(scorer, report.Options{
		Mode:      cfg.Analysis.Mode,
		TopIssues: cfg.Analysis.TopIssues,
		Generator: generator,
		Timeout:   cfg.GeminiTimeout(),
	})

	rep, err := synth.SynthesizeReport(ctx, subreddit, docs)
	if err != nil {
		if errors.Is(err, core.ErrEmptyResult) || errors.Is(err, core.ErrNoTarget) {
			return err
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	markdown := render.FormatMarkdown(rep)
	fmt.Fprintln(os.Stdout, markdown)

	path, err := render.WriteReportToFile(markdown, cfg.Output.Directory, subreddit, "md")
	if err != nil {
		return err
	}
	logger.Info("report written", "path", path, "posts", rep.DocumentsAnalyzed, "ai_enhanced", rep.AIEnhanced)

	if cfg.Output.HTML {
		htmlPath, err := render.WriteReportToFile(render.RenderHTML(markdown), cfg.Output.Directory, subreddit, "html")
		if err != nil {
			return err
		}
		logger.Info("HTML report written", "path", htmlPath)
	}

	return nil
}

// applyAnalyzeFlags lets explicitly set flags override the file/env
// configuration.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("limit") {
		cfg.Reddit.Limit = analyzeLimit
	}
	if cmd.Flags().Changed("comments") {
		cfg.Reddit.CommentsPerPost = analyzeComments
	}
	if cmd.Flags().Changed("mode") {
		cfg.Analysis.Mode = analyzeMode
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Analysis.Strategy = analyzeStrategy
	}
	if cmd.Flags().Changed("ai") {
		cfg.Gemini.Enabled = analyzeAI
	}
	if cmd.Flags().Changed("top") {
		cfg.Analysis.TopIssues = analyzeTop
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Directory = analyzeOutput
	}
	if cmd.Flags().Changed("html") {
		cfg.Output.HTML = analyzeHTML
	}
}
