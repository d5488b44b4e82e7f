package insight

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type stubProvider struct {
	response string
	err      error
	prompt   string
}

func (s *stubProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

var sampleRatios = map[string]float64{"Current Ratio": 0.8}
var sampleScores = map[string]float64{"Liquidity": 40}

func TestRequestWithoutCredential(t *testing.T) {
	r := NewRequester(&stubProvider{}, "")
	adv := r.Request(context.Background(), sampleRatios, sampleScores, 40)
	if adv.Summary != MissingCredentialMessage {
		t.Errorf("Expected fixed missing-credential message, got %q", adv.Summary)
	}
}

func TestRequestParsesEnvelope(t *testing.T) {
	stub := &stubProvider{
		response: "```json\n{\"summary\": \"### Liquidity\\nRaise cash buffers.\", \"focus_areas\": [\"Liquidity\"]}\n```",
	}
	r := NewRequester(stub, "test-key")

	adv := r.Request(context.Background(), sampleRatios, sampleScores, 40)
	if !strings.Contains(adv.Summary, "Raise cash buffers.") {
		t.Errorf("Expected parsed summary, got %q", adv.Summary)
	}
	if len(adv.FocusAreas) != 1 || adv.FocusAreas[0] != "Liquidity" {
		t.Errorf("Expected focus areas [Liquidity], got %v", adv.FocusAreas)
	}
	if !strings.Contains(stub.prompt, "\"Current Ratio\"") {
		t.Error("Expected ratios serialized into the prompt")
	}
}

func TestRequestFallsBackToRawText(t *testing.T) {
	stub := &stubProvider{response: "Improve margins by renegotiating supplier terms."}
	r := NewRequester(stub, "test-key")

	adv := r.Request(context.Background(), sampleRatios, sampleScores, 40)
	if adv.Summary != "Improve margins by renegotiating supplier terms." {
		t.Errorf("Expected raw response as summary, got %q", adv.Summary)
	}
	if len(adv.FocusAreas) != 0 {
		t.Errorf("Expected no focus areas, got %v", adv.FocusAreas)
	}
}

func TestRequestEmbedsProviderError(t *testing.T) {
	stub := &stubProvider{err: fmt.Errorf("status=429")}
	r := NewRequester(stub, "test-key")

	adv := r.Request(context.Background(), sampleRatios, sampleScores, 40)
	if !strings.Contains(adv.Summary, "status=429") {
		t.Errorf("Expected embedded provider error, got %q", adv.Summary)
	}
}
