package domain

import (
	"context"
	"errors"

	"github.com/davidbz/translateflow/internal/observability"
)

// StandardCostCalculator prices a run's usage from a PricingRegistry.
type StandardCostCalculator struct {
	pricing PricingRegistry
}

// NewStandardCostCalculator creates a new cost calculator.
func NewStandardCostCalculator(pricing PricingRegistry) *StandardCostCalculator {
	return &StandardCostCalculator{pricing: pricing}
}

// Calculate estimates the USD cost of usage for model. A model without a
// price list entry, such as a dated snapshot, is reported as 0 and logged
// as unavailable.
func (c *StandardCostCalculator) Calculate(ctx context.Context, model string, usage Usage) (float64, error) {
	if model == "" {
		return 0, errors.New("model cannot be empty")
	}

	price, err := c.pricing.GetPricing(ctx, model)
	switch {
	case errors.Is(err, ErrPricingNotFound):
		observability.FromContext(observability.WithModel(ctx, model)).Warn(
			"no pricing for model, cost estimate unavailable",
			observability.Int("total_tokens", usage.TotalTokens()),
		)
		return 0, nil
	case err != nil:
		return 0, err
	}

	return price.Cost(usage), nil
}
