package intelligence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
)

// AnthropicClient speaks the Anthropic messages REST API directly. The
// system prompt goes in the top-level system field, not a message role.
type AnthropicClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicClient creates an Anthropic-backed adapter.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicClient{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *AnthropicClient) Name() string {
	return "anthropic"
}

func (a *AnthropicClient) Model() string {
	return a.model
}

// WithModel returns a copy of the adapter targeting a different model.
func (a *AnthropicClient) WithModel(model string) ProviderAdapter {
	clone := *a
	clone.model = model
	return &clone
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *AnthropicClient) Generate(ctx context.Context, prompt, systemPrompt string, temperature float64, maxTokens int) (string, error) {
	body := anthropicRequest{
		Model:  a.model,
		System: systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Provider: a.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", &ProviderError{Provider: a.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: a.Name(), Err: err}
	}
	defer resp.Body.Close()

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ProviderError{Provider: a.Name(), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return "", &ProviderError{Provider: a.Name(), Err: fmt.Errorf("%s", msg)}
	}
	if len(decoded.Content) == 0 {
		return "", &ProviderError{Provider: a.Name(), Err: fmt.Errorf("empty response")}
	}
	return decoded.Content[0].Text, nil
}
