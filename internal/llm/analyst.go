// Package llm is the capability boundary to the model provider. The
// pipeline and the dashboard depend only on the Analyst interface; tests
// substitute a stub so no pipeline test touches the network.
package llm

import (
	"context"

	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/schema"
)

// DefaultSampleSize bounds how many rows are shipped to the synthesis call.
// Truncation keeps existing row order; no resampling.
const DefaultSampleSize = 15

// Analyst is the two-call surface the pipeline needs: one structured call
// that turns a question into a QueryPlan, and one that turns rows into an
// AnalystInsight. Both are single request/response with no internal retry.
type Analyst interface {
	Plan(ctx context.Context, question string, sc *schema.Context) (*models.QueryPlan, error)
	Synthesize(ctx context.Context, rows []models.ResultRow) (*models.AnalystInsight, error)
}
