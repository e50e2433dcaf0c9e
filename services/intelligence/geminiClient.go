package intelligence

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient adapts Google's generative AI SDK to the ProviderAdapter
// contract. Gemini has no system role on single-shot calls, so the system
// prompt is set as the model's system instruction.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed adapter.
func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-pro"
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Name() string {
	return "gemini"
}

func (g *GeminiClient) Model() string {
	return g.model
}

// WithModel returns a copy of the adapter targeting a different model.
func (g *GeminiClient) WithModel(model string) ProviderAdapter {
	clone := *g
	clone.model = model
	return &clone
}

func (g *GeminiClient) Generate(ctx context.Context, prompt, systemPrompt string, temperature float64, maxTokens int) (string, error) {
	model := g.client.GenerativeModel(g.model)
	if systemPrompt != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	}
	model.SetTemperature(float32(temperature))
	model.SetMaxOutputTokens(int32(maxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ProviderError{Provider: g.Name(), Err: fmt.Errorf("empty response")}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
