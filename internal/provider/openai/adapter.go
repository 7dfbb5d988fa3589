// Package openai provides an adapter for the OpenAI chat completions API using
// the official SDK. It implements domain.Provider and converts between the
// system+user request record and SDK types.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/translateflow/internal/domain"
	"github.com/davidbz/translateflow/internal/observability"
)

const providerName = "openai"

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client openai.Client
	name   string
	models map[string]bool
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if config.MaxRetries < 0 {
		return nil, errors.New("OpenAI max retries cannot be negative")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(config.MaxRetries),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		name:   providerName,
		models: buildModelSet(SupportedModels()),
	}, nil
}

// Complete sends one chat completion request made of a system and a user message.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Model == "" {
		return nil, errors.New("model cannot be empty")
	}
	if req.MaxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got %d", req.MaxTokens)
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API", observability.Bool("catalog_model", p.models[req.Model]))

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req))
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	answer := p.toAnswer(resp)

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", answer.Usage.InputTokens),
		observability.Int("completion_tokens", answer.Usage.OutputTokens),
	)

	return answer, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// IsModelSupported accepts any non-empty model ID. The API takes dated
// snapshots and newer models that are not in the catalog.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return model != ""
}

// SupportedModels returns the priced catalog used for routing.
func (p *Provider) SupportedModels(_ context.Context) []string {
	return SupportedModels()
}

// toSDKParams converts the domain request to SDK ChatCompletionNewParams.
func (p *Provider) toSDKParams(req *domain.CompletionRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	}

	return params
}

// toAnswer converts the SDK response. A response without usage decodes to
// zero counts; a response without choices yields an empty message.
func (p *Provider) toAnswer(resp *openai.ChatCompletion) *domain.CompletionAnswer {
	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &domain.CompletionAnswer{
		Message: content,
		Usage:   domain.NewUsage(int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens)),
	}
}
