package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/insightdeck/insightdeck/internal/models"
	"github.com/insightdeck/insightdeck/internal/schema"
	"github.com/rs/zerolog/log"
)

// Anthropic is the Analyst implementation backed by Claude or a compatible
// proxy. It is stateless across calls and safe for concurrent use.
type Anthropic struct {
	client     *anthropic.Client
	model      string
	maxTokens  int
	sampleSize int
}

// NewAnthropic creates the provider client. baseURL overrides the API host
// for proxies; sampleSize <= 0 falls back to DefaultSampleSize.
func NewAnthropic(apiKey, model, baseURL string, sampleSize int) *Anthropic {
	if model == "" {
		model = "claude-sonnet-4-6"
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Anthropic{
		client:     anthropic.NewClient(opts...),
		model:      model,
		maxTokens:  2048,
		sampleSize: sampleSize,
	}
}

// Plan asks the model for a QueryPlan. A provider failure or an unparseable
// response is a PlanningError; no retry.
func (a *Anthropic) Plan(ctx context.Context, question string, sc *schema.Context) (*models.QueryPlan, error) {
	out, err := a.complete(ctx, plannerSystemPrompt, buildPlannerPrompt(question, sc))
	if err != nil {
		return nil, &models.PlanningError{Err: err}
	}
	plan, err := parsePlan(out)
	if err != nil {
		log.Warn().Err(err).Msg("planner output did not parse")
		return nil, &models.PlanningError{Err: err}
	}
	return plan, nil
}

// Synthesize asks the model for an AnalystInsight over at most sampleSize
// rows (existing row order; no resampling). Failures are SynthesisError.
func (a *Anthropic) Synthesize(ctx context.Context, rows []models.ResultRow) (*models.AnalystInsight, error) {
	if len(rows) > a.sampleSize {
		rows = rows[:a.sampleSize]
	}
	out, err := a.complete(ctx, synthesizerSystemPrompt, buildSynthesizerPrompt(rows))
	if err != nil {
		return nil, &models.SynthesisError{Err: err}
	}
	insight, err := parseInsight(out)
	if err != nil {
		log.Warn().Err(err).Msg("synthesizer output did not parse")
		return nil, &models.SynthesisError{Err: err}
	}
	return insight, nil
}

// complete issues one text completion and concatenates the text blocks of
// the reply.
func (a *Anthropic) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(a.model)),
		MaxTokens: anthropic.F(int64(a.maxTokens)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		}),
	}
	if systemPrompt != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(systemPrompt),
		})
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if b, ok := block.AsUnion().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	return text, nil
}
