// Package llm wraps the Gemini SDK behind the single "generate text
// from prompt" operation the synthesizer consumes. The pipeline never
// depends on this package directly; it is injected as an optional
// capability and its absence just means deterministic-only reports.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// DefaultModel is the default Gemini model used for report enrichment.
const DefaultModel = "gemini-flash-lite-latest"

// Client is a thin synchronous Gemini client.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates a Gemini client. The API key is resolved from the
// GEMINI_API_KEY environment variable first, then viper's
// gemini.api_key. A missing key is an error: callers treat it as "no
// generative capability configured" and run deterministic-only.
func NewClient(modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = viper.GetString("gemini.api_key")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required: set GEMINI_API_KEY or gemini.api_key in config")
	}

	if modelName == "" {
		modelName = viper.GetString("gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// Generate runs one synchronous completion. An empty response is
// returned as an error so callers can treat "model said nothing" and
// "call failed" identically.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: maxTokens,
		Temperature:     genai.Ptr(float32(0.7)),
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}
