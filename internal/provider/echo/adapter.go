// Package echo provides an offline provider that returns the prompt unchanged.
// It implements domain.Provider without external API calls, which makes it
// suitable for dry runs of the translate flow and for tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidbz/translateflow/internal/domain"
	"github.com/davidbz/translateflow/internal/observability"
)

const (
	providerName = "echo"
	modelName    = "echo4"
)

// Provider implements the domain.Provider interface for dry runs.
type Provider struct {
	name            string
	supportedModels map[string]bool
}

// NewProvider creates a new echo provider.
// No configuration is required as this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{
		name: providerName,
		supportedModels: map[string]bool{
			modelName: true,
		},
	}
}

// Complete returns the user prompt as the answer.
// Token counts are whitespace-separated words.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if !p.supportedModels[req.Model] {
		return nil, fmt.Errorf("model %s is not supported by echo provider", req.Model)
	}

	inputTokens := countTokens(req.SystemPrompt) + countTokens(req.Prompt)
	outputTokens := countTokens(req.Prompt)

	observability.FromContext(ctx).Debug("echo completed",
		observability.Int("prompt_tokens", inputTokens),
		observability.Int("completion_tokens", outputTokens),
	)

	return &domain.CompletionAnswer{
		Message: req.Prompt,
		Usage:   domain.NewUsage(inputTokens, outputTokens),
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// IsModelSupported checks if the provider supports the given model.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return p.supportedModels[model]
}

// SupportedModels returns a list of all models this provider supports.
func (p *Provider) SupportedModels(_ context.Context) []string {
	models := make([]string, 0, len(p.supportedModels))
	for model := range p.supportedModels {
		models = append(models, model)
	}
	return models
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	return len(strings.Fields(content))
}
