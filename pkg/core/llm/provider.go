package llm

import (
	"context"
)

// Provider is the interface for all text-generation backends. Options is
// a per-call bag for overrides the caller may not want baked into the
// provider ("api_key", "model", "temperature").
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

func stringOption(options map[string]interface{}, key, fallback string) string {
	if val, ok := options[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

func floatOption(options map[string]interface{}, key string, fallback float64) float64 {
	if val, ok := options[key].(float64); ok {
		return val
	}
	return fallback
}
