package models

import "strconv"

// Visualization kinds the planner may choose. An unrecognized value is passed
// through to the presentation layer unchanged; rendering decides what to do
// with it.
const (
	VizBar     = "bar"
	VizLine    = "line"
	VizPie     = "pie"
	VizArea    = "area"
	VizScatter = "scatter"
)

// ResultRow is one row returned by the database bridge. The column set is
// schema-dependent and not known statically, so consumers read fields
// through the typed accessors and tolerate absent columns.
type ResultRow map[string]interface{}

// Float reads a numeric column, tolerating string-encoded numbers from the
// bridge. Absent or non-numeric values read as 0.
func (r ResultRow) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// String reads a column as text. Numeric values are formatted; absent values
// read as "".
func (r ResultRow) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// QueryPlan is the structured output of the planning call: a SQL statement
// plus a chart specification. SQL is untrusted text and must pass through
// sqlnorm.Normalize before execution.
type QueryPlan struct {
	SQL               string `json:"sql"`
	Explanation       string `json:"explanation"`
	VisualizationType string `json:"visualization_type"`
	XAxis             string `json:"x_axis"`
	YAxis             string `json:"y_axis"`
}

// QueryResult is the plan enriched with the rows the bridge returned.
// Data is always non-nil, possibly empty.
type QueryResult struct {
	Data              []ResultRow `json:"data"`
	SQL               string      `json:"sql"`
	Explanation       string      `json:"explanation"`
	VisualizationType string      `json:"visualization_type"`
	XAxis             string      `json:"x_axis"`
	YAxis             string      `json:"y_axis"`
}

// AnalystInsight is the structured narrative produced by the synthesis call.
// All fields are present on a successful synthesis; the list fields are
// non-nil and capped to a handful of entries.
type AnalystInsight struct {
	Summary     string   `json:"summary"`
	Trends      []string `json:"trends"`
	Anomalies   []string `json:"anomalies"`
	Suggestions []string `json:"suggestions"`
}

// AnalysisResult is the composite returned by one pipeline run.
type AnalysisResult struct {
	Question string         `json:"question"`
	Result   QueryResult    `json:"result"`
	Insight  AnalystInsight `json:"insight"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
