package openai

import (
	"context"
	"fmt"

	"github.com/davidbz/translateflow/internal/domain"
)

// RegisterPricing registers OpenAI model pricing (USD per 1M tokens) with the registry.
func RegisterPricing(ctx context.Context, registry domain.PricingRegistry) error {
	models := map[string]domain.PricingConfig{
		"gpt-4o":        {InputCostPer1M: 2.50, OutputCostPer1M: 10.00},
		"gpt-4o-mini":   {InputCostPer1M: 0.15, OutputCostPer1M: 0.60},
		"gpt-4.1":       {InputCostPer1M: 2.00, OutputCostPer1M: 8.00},
		"gpt-4.1-mini":  {InputCostPer1M: 0.40, OutputCostPer1M: 1.60},
		"gpt-4.1-nano":  {InputCostPer1M: 0.10, OutputCostPer1M: 0.40},
		"gpt-4-turbo":   {InputCostPer1M: 10.00, OutputCostPer1M: 30.00},
		"gpt-3.5-turbo": {InputCostPer1M: 0.50, OutputCostPer1M: 1.50},
	}

	for model, config := range models {
		if err := registry.RegisterPricing(ctx, model, config); err != nil {
			return fmt.Errorf("failed to register pricing for model %s: %w", model, err)
		}
	}

	return nil
}
