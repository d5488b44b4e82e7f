package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Wire types for OpenAI-style chat-completions APIs, shared by the
// OpenAI and DeepSeek providers.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// doChatCompletion posts a chat request and returns the first choice's
// content. Error strings carry a tag prefix so callers can log the failing
// stage without unwrapping.
func doChatCompletion(ctx context.Context, tag, url, apiKey string, reqBody chatRequest) (string, error) {
	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%s_MARSHAL_ERROR: %v", tag, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("%s_REQ_CREATE_ERROR: %v", tag, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s_API_CALL_ERROR: %v", tag, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%s_READ_BODY_ERROR: %v", tag, err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s_API_ERROR: status=%d body=%s", tag, res.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%s_UNMARSHAL_ERROR: %v", tag, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s_NO_CHOICES: %s", tag, string(body))
	}
	return response.Choices[0].Message.Content, nil
}
