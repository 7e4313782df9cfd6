// Package enrich rewrites an analysis' rule-generated advice into a few short,
// friendlier tips with an external text-generation provider. Enrichment is
// best effort: scores never change, and any failure leaves the original tips
// in place.
package enrich

import "context"

// Provider generates a completion for a single prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

func (f ProviderFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// coachInstructions is the system prompt shared by every provider.
const coachInstructions = `You are a supportive fitness and nutrition coach inside a personal tracking app.
You receive a scored analysis of the user's data and the rule-based advice it produced.
Rewrite that advice as at most 3 short, specific, encouraging tips (one sentence each).
Do not change, repeat or comment on the score. Do not give medical diagnoses.
Return only a JSON object of the form {"tips": ["...", "..."]}, no explanation.`
