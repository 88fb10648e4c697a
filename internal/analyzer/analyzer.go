// Package analyzer turns a batch of tweets into a validated sentiment
// verdict by way of one LLM call.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"marketmood/internal/model"
	"marketmood/internal/prompt"
	"marketmood/pkg/llm"
)

const requestTimeout = 60 * time.Second

const systemPrompt = `You are a crypto market sentiment analyst. You will receive a snapshot of recent tweets and threads about the crypto market, with engagement statistics.

Judge the overall market sentiment expressed in the material.

Output as JSON only, no other text:
{
  "overall_sentiment": "one of: very_bearish, bearish, neutral, bullish, very_bullish",
  "sentiment_intensity": "one of: low, moderate, high, extreme",
  "analysis": "2-4 sentences explaining the judgment, citing concrete posts or themes",
  "summary": "one sentence a trader could read at a glance",
  "key_events": ["2-5 short strings naming the events or narratives driving sentiment"]
}`

type Analyzer struct {
	provider llm.Provider
	prompts  *prompt.Builder
	timeout  time.Duration
}

func New(provider llm.Provider, prompts *prompt.Builder) *Analyzer {
	return &Analyzer{
		provider: provider,
		prompts:  prompts,
		timeout:  requestTimeout,
	}
}

// Analyze renders the prompt for the batch, calls the provider once under
// a hard timeout, and parses the answer into a verdict. Parsing accepts
// either a fenced json block or a bare JSON object; the four required
// verdict fields must be present. CreatedAt is the one field synthesized
// here when the model omits it.
func (a *Analyzer) Analyze(ctx context.Context, batch model.Batch) (*model.SentimentVerdict, error) {
	userPrompt, err := a.prompts.Build(batch)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	answer, err := a.provider.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	verdict, err := ParseVerdict(answer)
	if err != nil {
		return nil, err
	}

	if !contains(model.SentimentLevels, verdict.OverallSentiment) {
		slog.Warn("model returned unexpected sentiment level", "overall_sentiment", verdict.OverallSentiment)
	}
	if !contains(model.IntensityLevels, verdict.SentimentIntensity) {
		slog.Warn("model returned unexpected intensity level", "sentiment_intensity", verdict.SentimentIntensity)
	}

	if verdict.CreatedAt.IsZero() {
		verdict.CreatedAt = time.Now().UTC()
	}

	return verdict, nil
}

// Provider reports which backend this analyzer calls, for provenance.
func (a *Analyzer) Provider() (name, modelName string) {
	return a.provider.Name(), a.provider.ModelName()
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
