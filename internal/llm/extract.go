package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/insightdeck/insightdeck/internal/models"
)

// maxInsightItems caps each insight list defensively; the model is asked
// for three bullets but is not trusted to stop there.
const maxInsightItems = 5

// extractJSON pulls a JSON object out of model output using 3 strategies
// in order:
// 1. ```json ... ``` code block (preferred)
// 2. any ``` ... ``` code block whose content starts with {
// 3. outermost { ... } span in the raw text as last resort
func extractJSON(text string) string {
	lower := strings.ToLower(text)
	if idx := strings.Index(lower, "```json"); idx != -1 {
		body := text[idx+len("```json"):]
		if len(body) > 0 && body[0] == '\n' {
			body = body[1:]
		}
		if end := strings.Index(body, "```"); end != -1 {
			if obj := strings.TrimSpace(body[:end]); obj != "" {
				return obj
			}
		}
	}

	parts := strings.Split(text, "```")
	for i := 1; i < len(parts); i += 2 {
		candidate := strings.TrimSpace(parts[i])
		// strip a language tag line if present
		if nl := strings.Index(candidate, "\n"); nl != -1 && !strings.HasPrefix(candidate, "{") {
			candidate = strings.TrimSpace(candidate[nl:])
		}
		if strings.HasPrefix(candidate, "{") {
			return candidate
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return ""
}

// parsePlan decodes model output into a QueryPlan. All five fields are
// required; anything less is a parse failure, not a partial plan. The chart
// type is not validated against the known kinds: an unrecognized value is a
// rendering concern, not a pipeline error.
func parsePlan(text string) (*models.QueryPlan, error) {
	obj := extractJSON(text)
	if obj == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var plan models.QueryPlan
	if err := json.Unmarshal([]byte(obj), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	for field, v := range map[string]string{
		"sql":                plan.SQL,
		"explanation":        plan.Explanation,
		"visualization_type": plan.VisualizationType,
		"x_axis":             plan.XAxis,
		"y_axis":             plan.YAxis,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("plan is missing required field %q", field)
		}
	}
	return &plan, nil
}

// parseInsight decodes model output into an AnalystInsight. The summary is
// required; the list fields come back non-nil and capped even when the
// model under-delivers.
func parseInsight(text string) (*models.AnalystInsight, error) {
	obj := extractJSON(text)
	if obj == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var insight models.AnalystInsight
	if err := json.Unmarshal([]byte(obj), &insight); err != nil {
		return nil, fmt.Errorf("decode insight: %w", err)
	}
	if strings.TrimSpace(insight.Summary) == "" {
		return nil, fmt.Errorf("insight is missing required field %q", "summary")
	}

	insight.Trends = capList(insight.Trends)
	insight.Anomalies = capList(insight.Anomalies)
	insight.Suggestions = capList(insight.Suggestions)
	return &insight, nil
}

func capList(items []string) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > maxInsightItems {
		return items[:maxInsightItems]
	}
	return items
}
