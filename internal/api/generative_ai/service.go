package generativeAI

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.8
	DefaultMaxOutputTokens = 2000
)

var ErrMissingAPIKey = errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")

// Settings are the generation defaults applied to every request.
type Settings struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

func (s Settings) withDefaults() Settings {
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.Temperature <= 0 {
		s.Temperature = DefaultTemperature
	}
	if s.MaxOutputTokens <= 0 {
		s.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return s
}

type AIClient struct {
	client   *genai.Client
	settings Settings
}

func NewAIClient(ctx context.Context, apiKey string, settings Settings) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	if apiKey == "" {
		span.RecordError(ErrMissingAPIKey)
		span.SetStatus(codes.Error, "API key not set")
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &AIClient{
		client:   client,
		settings: settings.withDefaults(),
	}, nil
}

func (ai *AIClient) Model() string {
	return ai.settings.Model
}

func (ai *AIClient) contentConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(ai.settings.Temperature),
		MaxOutputTokens: ai.settings.MaxOutputTokens,
	}
}

// GenerateNarrative sends a single prompt and returns the response text with
// the token usage reported for it.
func (ai *AIClient) GenerateNarrative(ctx context.Context, prompt string) (string, types.TokenUsage, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateNarrative", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.settings.Model),
	))
	defer span.End()

	result, err := ai.client.Models.GenerateContent(ctx, ai.settings.Model, genai.Text(prompt), ai.contentConfig())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", types.TokenUsage{}, fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		err := fmt.Errorf("no valid content from AI")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response from AI")
		return "", types.TokenUsage{}, err
	}

	usage := UsageFromResponse(result)
	span.SetAttributes(
		attribute.Int("response.length", len(text)),
		attribute.Int("usage.total_tokens", usage.TotalTokens),
	)
	span.SetStatus(codes.Ok, "Content generated successfully")
	return text, usage, nil
}

// UsageFromResponse converts Gemini usage metadata into TokenUsage.
func UsageFromResponse(resp *genai.GenerateContentResponse) types.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return types.TokenUsage{}
	}
	md := resp.UsageMetadata
	return types.TokenUsage{
		CompletionTokens: int(md.CandidatesTokenCount),
		PromptTokens:     int(md.PromptTokenCount),
		TotalTokens:      int(md.TotalTokenCount),
	}
}
