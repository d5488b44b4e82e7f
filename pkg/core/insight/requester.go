package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/utils"
)

// MissingCredentialMessage is returned verbatim when no API key was
// configured. It replaces the advisory text; it is not an error.
const MissingCredentialMessage = "Error: AI API key not found. Please set it in your .env file to enable AI insights."

const systemPrompt = `You are an expert financial consultant for SMEs. You provide **concise, scannable, and actionable** advice. Keep your entire response to 2-3 short paragraphs.`

// Advisory is the natural-language outcome of an insight request. Summary
// is always populated: with advice, the missing-credential message, or
// an error description. FocusAreas is best-effort structure on top.
type Advisory struct {
	Summary    string
	FocusAreas []string
}

// envelope is the JSON shape the model is asked to answer with.
type envelope struct {
	Summary    string   `json:"summary"`
	FocusAreas []string `json:"focus_areas"`
}

// Requester asks a text-generation provider for an improvement summary
// over computed ratios and scores. The credential is injected at
// construction; an empty key means "insights disabled", never a failure.
type Requester struct {
	provider llm.Provider
	apiKey   string
}

func NewRequester(provider llm.Provider, apiKey string) *Requester {
	return &Requester{provider: provider, apiKey: apiKey}
}

// Request serializes the metrics into a prompt and asks the provider for
// a markdown advisory. It never returns an error: transport and parse
// failures degrade into the advisory text itself, since the numeric
// results they accompany are already computed.
func (r *Requester) Request(ctx context.Context, ratios, subScores map[string]float64, overall float64) Advisory {
	if r == nil || r.provider == nil || r.apiKey == "" {
		return Advisory{Summary: MissingCredentialMessage}
	}

	metrics := map[string]interface{}{
		"financial_ratios": ratios,
		"sub_scores":       subScores,
		"overall_score":    overall,
	}
	contextJSON, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return Advisory{Summary: fmt.Sprintf("Error preparing AI context: %v", err)}
	}

	prompt := fmt.Sprintf(`Analyze the following financial data:
%s

Instructions:
1. Identify the **top 1-2 weakest financial areas** (e.g., Profitability, Liquidity).
2. For each area, provide **2-3 concise bullet points** for improvement.
3. Keep the entire response to **2-3 short paragraphs total**.
4. Use markdown for headings (###, ####) and bolding (**text**).

Return ONLY a JSON object of this shape:
{"summary": "<the markdown advice>", "focus_areas": ["<weakest area>", "..."]}`, contextJSON)

	raw, err := r.provider.GenerateResponse(ctx, prompt, systemPrompt, map[string]interface{}{
		"api_key": r.apiKey,
	})
	if err != nil {
		return Advisory{Summary: fmt.Sprintf("Error connecting to AI provider: %v", err)}
	}

	// Models do not reliably honor the envelope; parse leniently and fall
	// back to treating the whole response as the advice.
	var env envelope
	if _, err := utils.SmartParse(utils.CleanMarkdown(raw), &env); err == nil && env.Summary != "" {
		return Advisory{Summary: utils.CleanMarkdown(env.Summary), FocusAreas: env.FocusAreas}
	}
	return Advisory{Summary: utils.CleanMarkdown(raw)}
}
