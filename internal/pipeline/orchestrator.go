// Package pipeline sequences one business question through planning,
// normalization, execution and synthesis.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/insightdeck/insightdeck/internal/bridge"
	"github.com/insightdeck/insightdeck/internal/llm"
	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/schema"
	"github.com/insightdeck/insightdeck/internal/security"
	"github.com/insightdeck/insightdeck/internal/sqlnorm"
	"github.com/rs/zerolog/log"
)

// Orchestrator owns no mutable state beyond its read-only collaborators;
// concurrent Run calls are independent.
type Orchestrator struct {
	analyst   llm.Analyst
	bridge    *bridge.Client
	schema    *schema.Context
	validator *security.QuestionValidator
	audit     *security.AuditLogger
}

func New(
	analyst llm.Analyst,
	br *bridge.Client,
	sc *schema.Context,
	validator *security.QuestionValidator,
	audit *security.AuditLogger,
) *Orchestrator {
	return &Orchestrator{
		analyst:   analyst,
		bridge:    br,
		schema:    sc,
		validator: validator,
		audit:     audit,
	}
}

// Run executes one end-to-end pipeline pass: plan, normalize, execute,
// synthesize. A planning or synthesis failure aborts the run; an execution
// failure does not, because the bridge absorbs it into an empty result set
// and empty data is a valid outcome. Whitespace-only questions are rejected
// before any collaborator is contacted.
func (o *Orchestrator) Run(ctx context.Context, question string) (*models.AnalysisResult, error) {
	start := time.Now()

	if strings.TrimSpace(question) == "" {
		return nil, models.ErrEmptyQuestion
	}
	if vr := o.validator.Validate(question); !vr.Valid {
		return nil, fmt.Errorf("question rejected: %s", vr.Message)
	}

	plan, err := o.analyst.Plan(ctx, question, o.schema)
	if err != nil {
		o.audit.LogRun(question, "", 0, time.Since(start).Milliseconds(), false, err.Error())
		return nil, err
	}

	sql := sqlnorm.Normalize(plan.SQL)
	if sql != plan.SQL {
		log.Debug().Str("sql", sql).Msg("normalizer rewrote generated SQL")
	}

	rows := o.bridge.Execute(ctx, sql)

	result := models.QueryResult{
		Data:              rows,
		SQL:               sql,
		Explanation:       plan.Explanation,
		VisualizationType: plan.VisualizationType,
		XAxis:             plan.XAxis,
		YAxis:             plan.YAxis,
	}

	insight, err := o.analyst.Synthesize(ctx, rows)
	if err != nil {
		o.audit.LogRun(question, sql, len(rows), time.Since(start).Milliseconds(), false, err.Error())
		return nil, err
	}

	o.audit.LogRun(question, sql, len(rows), time.Since(start).Milliseconds(), true, "")

	return &models.AnalysisResult{
		Question: question,
		Result:   result,
		Insight:  *insight,
	}, nil
}
