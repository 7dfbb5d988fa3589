package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPricingNotFound is returned for models without a price list entry.
var ErrPricingNotFound = errors.New("pricing not found")

const tokensPerMillion = 1_000_000.0

// PricingConfig contains model pricing information.
type PricingConfig struct {
	InputCostPer1M  float64 // USD per 1M input tokens
	OutputCostPer1M float64 // USD per 1M output tokens
}

// Cost prices one usage record in USD.
func (p PricingConfig) Cost(usage Usage) float64 {
	return (float64(usage.InputTokens)*p.InputCostPer1M + float64(usage.OutputTokens)*p.OutputCostPer1M) / tokensPerMillion
}

// CostCalculator estimates cost based on token usage.
type CostCalculator interface {
	// Calculate returns the total cost for a given model and usage.
	Calculate(ctx context.Context, model string, usage Usage) (float64, error)
}

// PricingRegistry maintains pricing information for models.
type PricingRegistry interface {
	// GetPricing returns pricing config for a model.
	GetPricing(ctx context.Context, model string) (PricingConfig, error)

	// RegisterPricing adds pricing for a model.
	RegisterPricing(ctx context.Context, model string, config PricingConfig) error
}

// InMemoryPricingRegistry stores pricing configs in memory.
type InMemoryPricingRegistry struct {
	mu      sync.RWMutex
	pricing map[string]PricingConfig
}

// NewInMemoryPricingRegistry creates a new in-memory pricing registry.
func NewInMemoryPricingRegistry() *InMemoryPricingRegistry {
	return &InMemoryPricingRegistry{
		mu:      sync.RWMutex{},
		pricing: make(map[string]PricingConfig),
	}
}

// GetPricing retrieves pricing for a model.
func (r *InMemoryPricingRegistry) GetPricing(_ context.Context, model string) (PricingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, exists := r.pricing[model]
	if !exists {
		return PricingConfig{}, fmt.Errorf("%w for model: %s", ErrPricingNotFound, model)
	}

	return config, nil
}

// RegisterPricing adds pricing for a model, replacing any previous entry.
func (r *InMemoryPricingRegistry) RegisterPricing(_ context.Context, model string, config PricingConfig) error {
	if model == "" {
		return errors.New("model cannot be empty")
	}
	if config.InputCostPer1M < 0 || config.OutputCostPer1M < 0 {
		return fmt.Errorf("pricing for model %s cannot be negative", model)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pricing[model] = config
	return nil
}
