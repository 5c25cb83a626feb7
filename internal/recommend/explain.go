package recommend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonathan/college-advisor/internal/llm"
	"github.com/jonathan/college-advisor/internal/prompts"
)

// explainMaxTokens bounds the generated justification length.
const explainMaxTokens = 100

// Explainer asks the generative service for a natural-language justification
// of a recommendation. It is an enrichment step: a failed request degrades
// to the numeric result and must never suppress it.
type Explainer struct {
	client llm.Client
}

// NewExplainer creates an explainer backed by the given client.
func NewExplainer(client llm.Client) *Explainer {
	return &Explainer{client: client}
}

// Explain generates a justification for the winning college. Callers should
// treat an error as a degraded (no-explanation) outcome, not a failure of
// the recommendation itself.
func (e *Explainer) Explain(ctx context.Context, best Ranked) (string, error) {
	template, err := prompts.Get("advisor.json", "explain_best")
	if err != nil {
		return "", fmt.Errorf("failed to load explanation prompt: %w", err)
	}

	prompt := prompts.Format(template, map[string]string{
		"Name":           best.College.Name,
		"Location":       best.College.Location,
		"AveragePackage": strconv.FormatFloat(best.College.Placements.AveragePackage, 'f', -1, 64),
		"Rating":         strconv.FormatFloat(best.College.Rating, 'f', -1, 64),
	})

	text, err := e.client.Generate(ctx, prompt, llm.Options{
		Tier:        llm.TierLite,
		MaxTokens:   explainMaxTokens,
		Temperature: llm.DefaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}
	return text, nil
}
