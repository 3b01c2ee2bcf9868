// Package enrich identifies manufacturer part numbers for free-text BOM
// descriptions through an OpenAI-compatible chat completions endpoint.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/partsflow/partsflow/pkg/logger"
)

const identifySystemPrompt = `You are an electronics sourcing assistant. ` +
	`Given a part description from a bill of materials, reply with the single ` +
	`most likely manufacturer part number (MPN) and nothing else. ` +
	`If you cannot identify a specific MPN, reply with exactly NONE.`

// LLMIdentifier resolves descriptions to MPNs via a chat completions API.
// It implements providers.PartIdentifier.
type LLMIdentifier struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     logger.Logger
}

// NewLLMIdentifier returns an identifier talking to baseURL (for example
// https://api.openai.com/v1) with the given model.
func NewLLMIdentifier(baseURL, apiKey, model string, client *http.Client, log logger.Logger) *LLMIdentifier {
	return &LLMIdentifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
		log:     log,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// IdentifyMPN returns the most likely MPN for description, or "" when the
// model cannot name one. A failure to reach the model is returned as an
// error; callers treat it as "no enrichment" rather than failing the BOM.
func (l *LLMIdentifier) IdentifyMPN(ctx context.Context, description string) (string, error) {
	body := chatRequest{
		Model: l.model,
		Messages: []chatMessage{
			{Role: "system", Content: identifySystemPrompt},
			{Role: "user", Content: description},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if l.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.apiKey)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}

	answer := strings.TrimSpace(cr.Choices[0].Message.Content)
	if answer == "" || strings.EqualFold(answer, "NONE") {
		return "", nil
	}
	l.log.DebugContext(ctx, "identified mpn from description", "description", description, "mpn", answer)
	return answer, nil
}
