package llm

import (
	"context"
	"fmt"
	"os"
)

// DeepSeekProvider calls the DeepSeek chat-completions API, which is
// OpenAI wire-compatible.
type DeepSeekProvider struct {
	Model string // e.g. "deepseek-chat"
}

var _ Provider = (*DeepSeekProvider)(nil)

func (p *DeepSeekProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := stringOption(options, "api_key", os.Getenv("DEEPSEEK_API_KEY"))
	if apiKey == "" {
		return "", fmt.Errorf("DEEPSEEK_API_KEY_MISSING: please set DEEPSEEK_API_KEY env var")
	}

	model := p.Model
	if model == "" {
		model = "deepseek-chat"
	}
	model = stringOption(options, "model", model)

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: floatOption(options, "temperature", 0.7),
		MaxTokens:   4096,
	}

	return doChatCompletion(ctx, "DEEPSEEK", "https://api.deepseek.com/chat/completions", apiKey, reqBody)
}
