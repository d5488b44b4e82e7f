package llm

import (
	"context"
	"fmt"
	"os"
)

// OpenAIProvider calls the OpenAI chat-completions API.
type OpenAIProvider struct {
	Model string // e.g. "gpt-4o-mini"
}

var _ Provider = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := stringOption(options, "api_key", os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY_MISSING: please set OPENAI_API_KEY env var")
	}

	model := p.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	model = stringOption(options, "model", model)

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: floatOption(options, "temperature", 0.7),
	}

	return doChatCompletion(ctx, "OPENAI", "https://api.openai.com/v1/chat/completions", apiKey, reqBody)
}
