package llm

import (
	"strings"
	"testing"
)

const planJSON = `{"sql":"SELECT TOP 5 NAME, SUM(AMOUNT) AS REVENUE FROM tblAudit GROUP BY NAME","explanation":"Top customers by revenue","visualization_type":"bar","x_axis":"NAME","y_axis":"REVENUE"}`

func TestExtractJSONStrategies(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"json code block", "Here is the plan:\n```json\n" + planJSON + "\n```\nDone."},
		{"uppercase tag", "```JSON\n" + planJSON + "\n```"},
		{"generic code block", "```\n" + planJSON + "\n```"},
		{"bare object", "Sure thing. " + planJSON + " Let me know."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.text)
			if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
				t.Fatalf("extractJSON returned %q", got)
			}
			if _, err := parsePlan(tt.text); err != nil {
				t.Errorf("parsePlan failed: %v", err)
			}
		})
	}
}

func TestExtractJSONNothingThere(t *testing.T) {
	if got := extractJSON("I cannot answer that."); got != "" {
		t.Errorf("expected empty extraction, got %q", got)
	}
}

func TestParsePlanRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing sql", `{"explanation":"x","visualization_type":"bar","x_axis":"a","y_axis":"b"}`},
		{"blank axis", `{"sql":"SELECT 1","explanation":"x","visualization_type":"bar","x_axis":" ","y_axis":"b"}`},
		{"missing viz", `{"sql":"SELECT 1","explanation":"x","x_axis":"a","y_axis":"b"}`},
		{"not json", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePlan(tt.text); err == nil {
				t.Error("expected parse failure")
			}
		})
	}
}

func TestParsePlanKeepsUnknownChartType(t *testing.T) {
	// chart plausibility is the renderer's problem, not the pipeline's
	text := `{"sql":"SELECT 1","explanation":"x","visualization_type":"hexbin","x_axis":"a","y_axis":"b"}`
	plan, err := parsePlan(text)
	if err != nil {
		t.Fatalf("parsePlan: %v", err)
	}
	if plan.VisualizationType != "hexbin" {
		t.Errorf("chart type rewritten to %q", plan.VisualizationType)
	}
}

func TestParseInsight(t *testing.T) {
	text := "```json\n" + `{"summary":"Revenue is up.","trends":["t1","t2"],"anomalies":[],"suggestions":["s1"]}` + "\n```"
	insight, err := parseInsight(text)
	if err != nil {
		t.Fatalf("parseInsight: %v", err)
	}
	if insight.Summary != "Revenue is up." {
		t.Errorf("summary = %q", insight.Summary)
	}
	if insight.Anomalies == nil || insight.Suggestions == nil || insight.Trends == nil {
		t.Error("insight lists must be non-nil")
	}
}

func TestParseInsightMissingLists(t *testing.T) {
	// the model omitting a list entirely still yields non-nil fields
	insight, err := parseInsight(`{"summary":"Quiet month."}`)
	if err != nil {
		t.Fatalf("parseInsight: %v", err)
	}
	if insight.Trends == nil || insight.Anomalies == nil || insight.Suggestions == nil {
		t.Error("omitted lists must decode to empty, not nil")
	}
}

func TestParseInsightRequiresSummary(t *testing.T) {
	if _, err := parseInsight(`{"summary":"  ","trends":["t"]}`); err == nil {
		t.Error("blank summary should fail")
	}
}

func TestParseInsightCapsLists(t *testing.T) {
	long := `{"summary":"ok","trends":["1","2","3","4","5","6","7","8"],"anomalies":[],"suggestions":[]}`
	insight, err := parseInsight(long)
	if err != nil {
		t.Fatalf("parseInsight: %v", err)
	}
	if len(insight.Trends) > maxInsightItems {
		t.Errorf("trends not capped: %d entries", len(insight.Trends))
	}
}
