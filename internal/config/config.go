// Package config holds the viper-backed application configuration.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Reddit   Reddit   `mapstructure:"reddit"`
	Analysis Analysis `mapstructure:"analysis"`
	Gemini   Gemini   `mapstructure:"gemini"`
	Output   Output   `mapstructure:"output"`
	Logging  Logging  `mapstructure:"logging"`
}

// Reddit holds document-retrieval configuration.
type Reddit struct {
	Limit           int    `mapstructure:"limit"`             // Documents per run (1-100)
	CommentsPerPost int    `mapstructure:"comments_per_post"` // Comments fetched per post (0-50)
	Timeout         string `mapstructure:"timeout"`
}

// Analysis holds pipeline configuration.
type Analysis struct {
	Mode      string `mapstructure:"mode"`       // Theme extraction runs when the mode contains "themes"
	Strategy  string `mapstructure:"strategy"`   // "lexicon" or "ensemble"
	TopIssues int    `mapstructure:"top_issues"` // High-impact ranking size
}

// Gemini holds generative-model configuration.
type Gemini struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int32  `mapstructure:"max_tokens"`
	Timeout   string `mapstructure:"timeout"`
}

// Output holds report output configuration.
type Output struct {
	Directory string `mapstructure:"directory"`
	HTML      bool   `mapstructure:"html"`
}

// Logging holds logging configuration.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// SetDefaults registers the default value for every knob. Called before
// the config file and environment are read so that partial configs work.
func SetDefaults() {
	viper.SetDefault("reddit.limit", 25)
	viper.SetDefault("reddit.comments_per_post", 5)
	viper.SetDefault("reddit.timeout", "15s")

	viper.SetDefault("analysis.mode", "sentiment+themes")
	viper.SetDefault("analysis.strategy", "lexicon")
	viper.SetDefault("analysis.top_issues", 3)

	viper.SetDefault("gemini.enabled", false)
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("gemini.max_tokens", 400)
	viper.SetDefault("gemini.timeout", "60s")

	viper.SetDefault("output.directory", "reports")
	viper.SetDefault("output.html", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// Load unmarshals the current viper state into a Config and validates
// the bounded knobs.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Reddit.Limit < 1 {
		cfg.Reddit.Limit = 1
	}
	if cfg.Reddit.Limit > 100 {
		cfg.Reddit.Limit = 100
	}
	if cfg.Reddit.CommentsPerPost < 0 {
		cfg.Reddit.CommentsPerPost = 0
	}
	if cfg.Reddit.CommentsPerPost > 50 {
		cfg.Reddit.CommentsPerPost = 50
	}
	if cfg.Analysis.TopIssues < 1 {
		cfg.Analysis.TopIssues = 3
	}

	return &cfg, nil
}

// RedditTimeout parses the retrieval timeout, falling back to 15s.
func (c *Config) RedditTimeout() time.Duration {
	return parseDuration(c.Reddit.Timeout, 15*time.Second)
}

// GeminiTimeout parses the generative-call timeout, falling back to 60s.
func (c *Config) GeminiTimeout() time.Duration {
	return parseDuration(c.Gemini.Timeout, 60*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
