package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrNoCredential is returned when a provider was built without an API key.
var ErrNoCredential = errors.New("API key is not configured")

// TextProvider generates a single text block for a prompt.
type TextProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error)
	Ping(ctx context.Context) bool
}

type ProviderResult struct {
	Text  string
	Model string
}

// GeminiProvider wraps the Gemini client with preset-aware generation logic.
type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
	logger       *zap.Logger
}

func NewGeminiProvider(client *genai.Client, defaultModel string, logger *zap.Logger) *GeminiProvider {
	return &GeminiProvider{
		client:       client,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

func (g *GeminiProvider) Name() string {
	return "Gemini"
}

func (g *GeminiProvider) DefaultModel() string {
	return g.defaultModel
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if g.client == nil {
		return ProviderResult{}, fmt.Errorf("gemini: %w", ErrNoCredential)
	}

	modelName := g.getModel(opts)
	config := GetPresetConfig(preset)
	if opts != nil {
		config = config.withOverrides(opts.Overrides)
	}

	g.logger.Debug("Generating with Gemini",
		zap.String("model", modelName),
		zap.String("preset", string(preset)),
		zap.Int("prompt_length", len(prompt)),
	)

	topK := float32(config.TopK)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &config.Temperature,
		TopP:            &config.TopP,
		TopK:            &topK,
		MaxOutputTokens: int32(config.MaxOutputTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), genConfig)
	if err != nil {
		g.logger.Error("Gemini generation failed", zap.Error(err))
		return ProviderResult{}, err
	}

	text := extractTextFromGeminiResponse(resp)
	if text == "" {
		return ProviderResult{}, fmt.Errorf("empty response from Gemini")
	}

	g.logger.Debug("Gemini response received", zap.Int("length", len(text)))
	return ProviderResult{Text: text, Model: modelName}, nil
}

func (g *GeminiProvider) Ping(ctx context.Context) bool {
	if g.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	temp := float32(0)
	resp, err := g.client.Models.GenerateContent(ctx, g.defaultModel, genai.Text("ping"), &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 10,
	})
	if err != nil {
		g.logger.Debug("Gemini ping failed", zap.Error(err))
		return false
	}
	return extractTextFromGeminiResponse(resp) != ""
}

func (g *GeminiProvider) getModel(opts *GenerateOptions) string {
	if opts != nil && opts.Model != "" {
		return opts.Model
	}
	return g.defaultModel
}

// OpenAIProvider wraps the OpenAI chat completion client.
type OpenAIProvider struct {
	client       *openai.Client
	defaultModel string
	logger       *zap.Logger
}

// NewOpenAIProvider returns nil when apiKey is empty.
func NewOpenAIProvider(apiKey string, defaultModel string, logger *zap.Logger, opts ...option.RequestOption) *OpenAIProvider {
	if apiKey == "" {
		return nil
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIProvider{
		client:       &client,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

func (o *OpenAIProvider) Name() string {
	return "OpenAI"
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if o.client == nil {
		return ProviderResult{}, fmt.Errorf("openai: %w", ErrNoCredential)
	}

	modelName := o.getModel(opts)
	config := GetOpenAIPresetConfig(preset)

	o.logger.Info("Fallback: Generating with OpenAI",
		zap.String("model", modelName),
		zap.String("preset", string(preset)),
	)

	params := openai.ChatCompletionNewParams{
		Model: chatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(int64(config.MaxTokens)),
	}

	// GPT-5 models reject sampling parameters.
	if !strings.HasPrefix(modelName, "gpt-5") {
		params.Temperature = openai.Float(float64(config.Temperature))
		params.TopP = openai.Float(float64(config.TopP))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		o.logger.Error("OpenAI generation failed", zap.Error(err))
		return ProviderResult{}, err
	}

	if len(resp.Choices) == 0 {
		return ProviderResult{}, fmt.Errorf("no choices in OpenAI response")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return ProviderResult{}, fmt.Errorf("empty response from OpenAI")
	}

	o.logger.Info("OpenAI response received",
		zap.Int("length", len(text)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return ProviderResult{Text: text, Model: modelName}, nil
}

func (o *OpenAIProvider) Ping(ctx context.Context) bool {
	if o.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("ping"),
		},
		MaxTokens:   openai.Int(10),
		Temperature: openai.Float(0),
	})
	if err != nil {
		o.logger.Debug("OpenAI ping failed", zap.Error(err))
		return false
	}
	return len(resp.Choices) > 0
}

func (o *OpenAIProvider) getModel(opts *GenerateOptions) string {
	if opts != nil && opts.Model != "" {
		return opts.Model
	}
	return o.defaultModel
}

func chatModel(name string) openai.ChatModel {
	switch name {
	case "gpt-5-mini":
		return openai.ChatModelGPT5Mini
	case "gpt-5":
		return openai.ChatModelGPT5
	case "gpt-5-nano":
		return openai.ChatModelGPT5Nano
	case "gpt-4.1":
		return openai.ChatModelGPT4_1
	case "gpt-4.1-mini":
		return openai.ChatModelGPT4_1Mini
	case "gpt-4.1-nano":
		return openai.ChatModelGPT4_1Nano
	case "gpt-4o":
		return openai.ChatModelGPT4o
	case "gpt-4o-mini":
		return openai.ChatModelGPT4oMini
	default:
		return openai.ChatModel(name)
	}
}

func extractTextFromGeminiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		// Thought summaries are not part of the answer.
		if part.Text != "" && !part.Thought {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "")
}
