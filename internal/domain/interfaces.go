package domain

import (
	"context"
	"time"
)

// Completer issues exactly one completion call.
type Completer interface {
	// Complete sends the request and returns the model's answer.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionAnswer, error)
}

// Provider is a named Completer backed by an LLM service.
type Provider interface {
	Completer

	// Name returns the provider identifier.
	Name() string

	// IsModelSupported checks if the provider supports the given model.
	IsModelSupported(ctx context.Context, model string) bool

	// SupportedModels returns the models the provider knows about.
	SupportedModels(ctx context.Context) []string
}

// ProviderRegistry manages available providers.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns all available providers.
	List(ctx context.Context) ([]string, error)
}

// AnswerStore persists answers under an opaque key.
type AnswerStore interface {
	// Load returns the stored answer, or ErrCacheMiss.
	Load(ctx context.Context, key string) (*CompletionAnswer, error)

	// Save stores the answer for ttl.
	Save(ctx context.Context, key string, answer *CompletionAnswer, ttl time.Duration) error
}
