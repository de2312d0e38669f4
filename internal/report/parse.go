package report

import (
	"encoding/json"
	"strings"

	"redlens/internal/core"
)

// insightsPayload mirrors the JSON structure requested from the model
// for product insights.
type insightsPayload struct {
	Likes         []string `json:"likes"`
	Frustrations  []string `json:"frustrations"`
	Improving     []string `json:"improving"`
	Worsening     []string `json:"worsening"`
	Opportunities []string `json:"opportunities"`
}

// actionItemsPayload mirrors the JSON structure requested for action
// items.
type actionItemsPayload struct {
	Items []core.ActionItem `json:"items"`
}

// extractJSON pulls the first bracketed structure out of a free-form
// model response: everything from the first '{' through the last '}'.
// Models routinely wrap JSON in prose or code fences, so the parse is
// best-effort with a strict all-or-nothing acceptance rule.
func extractJSON(response string) (string, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return response[start : end+1], true
}

// parseInsights parses a model response into product insights. The
// parsed structure wins outright only when it decodes cleanly and
// carries at least one entry; anything else is discarded entirely so the
// deterministic baseline is never mixed with partial AI output.
func parseInsights(response string) (core.ProductInsights, bool) {
	raw, ok := extractJSON(response)
	if !ok {
		return core.ProductInsights{}, false
	}

	var payload insightsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return core.ProductInsights{}, false
	}

	total := len(payload.Likes) + len(payload.Frustrations) +
		len(payload.Improving) + len(payload.Worsening) + len(payload.Opportunities)
	if total == 0 {
		return core.ProductInsights{}, false
	}

	return core.ProductInsights{
		Likes:         payload.Likes,
		Frustrations:  payload.Frustrations,
		Improving:     payload.Improving,
		Worsening:     payload.Worsening,
		Opportunities: payload.Opportunities,
	}, true
}

// parseActionItems parses a model response into action items. Parse
// failure yields an empty list, not an error: action items are an
// optional report field.
func parseActionItems(response string) []core.ActionItem {
	raw, ok := extractJSON(response)
	if !ok {
		return nil
	}

	var payload actionItemsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}

	items := make([]core.ActionItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		if strings.TrimSpace(item.Action) == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
