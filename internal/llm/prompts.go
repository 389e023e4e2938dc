package llm

import (
	"encoding/json"
	"fmt"

	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/schema"
)

const plannerSystemPrompt = `You are an expert data analyst with deep knowledge of SQL Server T-SQL.

Your task is to translate a business question into one SQL query plus a chart specification for the schema provided.

RULES:
1. Generate only SELECT queries - never INSERT, UPDATE, DELETE, DROP, or DDL
2. Use the exact table and column names from the schema, fully qualified as dbo.TABLE
3. Use the documented join predicates when combining tables
4. Add TOP 100 unless the question asks for a specific number of rows
5. Choose the chart type from the question shape: ranking or comparison -> "bar", change over time -> "line", cumulative volume over time -> "area", share of a total -> "pie", relationship between two measures -> "scatter"
6. x_axis and y_axis must name columns returned by your query
7. Reply with a single JSON object inside a ` + "```json" + ` code block with exactly these keys: sql, explanation, visualization_type, x_axis, y_axis. No other text.`

const synthesizerSystemPrompt = `You are a business analyst writing an executive readout of a query result.

RULES:
1. Base every statement strictly on the rows provided; never invent figures
2. summary is one sentence naming the most important fact in the data
3. trends, anomalies and suggestions each hold at most 3 short bullet strings
4. anomalies covers risk factors and outliers; suggestions are concrete next actions
5. Reply with a single JSON object inside a ` + "```json" + ` code block with exactly these keys: summary, trends, anomalies, suggestions. No other text.`

func buildPlannerPrompt(question string, sc *schema.Context) string {
	return fmt.Sprintf("## Database schema\n\n%s\n## Question\n\n%s", sc.Serialize(), question)
}

func buildSynthesizerPrompt(rows []models.ResultRow) string {
	sample, err := json.Marshal(rows)
	if err != nil {
		sample = []byte("[]")
	}
	return fmt.Sprintf("## Query result rows (sample of %d)\n\n%s\n\nWrite the readout.", len(rows), sample)
}
