package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/translateflow/internal/cache/redis"
	"github.com/davidbz/translateflow/internal/config"
	"github.com/davidbz/translateflow/internal/domain"
	"github.com/davidbz/translateflow/internal/observability"
	"github.com/davidbz/translateflow/internal/provider/echo"
	"github.com/davidbz/translateflow/internal/provider/openai"
	"github.com/davidbz/translateflow/internal/provider/registry"
)

func main() {
	container := buildContainer()

	if err := container.Invoke(run); err != nil {
		log.Fatalf("Translation failed: %v", err)
	}
}

// run executes one translation and reports token usage, also after a failure.
func run(
	translateCfg *config.TranslateConfig,
	llmCfg *config.LLMConfig,
	provider domain.Provider,
	flow *domain.TranslateFlow,
	costs domain.CostCalculator,
	logger *zap.Logger,
) error {
	defer func() { _ = logger.Sync() }()

	ctx := observability.WithRunID(context.Background(), observability.GenerateRunID())
	ctx = observability.WithProvider(ctx, provider.Name())
	ctx = observability.WithModel(ctx, llmCfg.Model)
	runLogger := observability.FromContext(ctx)

	runLogger.Info("starting translation", observability.String("input_path", translateCfg.InputPath))

	var usage domain.Usage
	runErr := flow.Run(ctx, &usage, translateCfg.InputPath, translateCfg.OutputPath)

	cost, err := costs.Calculate(ctx, llmCfg.Model, usage)
	if err != nil {
		runLogger.Warn("failed to estimate cost", observability.Error(err))
	}

	runLogger.Info("tokens used",
		observability.Int("input_tokens", usage.InputTokens),
		observability.Int("output_tokens", usage.OutputTokens),
		observability.Int("total_tokens", usage.TotalTokens()),
		observability.Float64("estimated_cost_usd", cost),
	)

	if runErr != nil {
		return runErr
	}

	runLogger.Info("translation written", observability.String("output_path", translateCfg.OutputPath))
	return nil
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Pricing
	if err := container.Provide(newPricingRegistry); err != nil {
		log.Fatalf("Failed to provide pricing registry: %v", err)
	}
	if err := container.Provide(func(pricing domain.PricingRegistry) domain.CostCalculator {
		return domain.NewStandardCostCalculator(pricing)
	}); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}

	// Providers
	if err := container.Provide(newProviderRegistry); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}
	if err := container.Provide(func(reg *registry.Registry, llmCfg *config.LLMConfig) (domain.Provider, error) {
		provider, err := reg.Resolve(context.Background(), llmCfg.Provider, llmCfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to select provider: %w", err)
		}
		return provider, nil
	}); err != nil {
		log.Fatalf("Failed to provide LLM provider: %v", err)
	}

	// Answer cache
	if err := container.Provide(newAnswerStore); err != nil {
		log.Fatalf("Failed to provide answer store: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(
		provider domain.Provider,
		store domain.AnswerStore,
		cacheCfg *redis.Config,
	) *domain.CachingCompleter {
		return domain.NewCachingCompleter(provider, store, cacheCfg.TTL)
	}); err != nil {
		log.Fatalf("Failed to provide caching completer: %v", err)
	}
	if err := container.Provide(func(
		completer *domain.CachingCompleter,
		llmCfg *config.LLMConfig,
	) *domain.RetryingClient {
		return domain.NewRetryingClient(completer, llmCfg.RetryAttempts, llmCfg.RetryDelay)
	}); err != nil {
		log.Fatalf("Failed to provide retrying client: %v", err)
	}
	if err := container.Provide(func(
		client *domain.RetryingClient,
		translateCfg *config.TranslateConfig,
		llmCfg *config.LLMConfig,
	) *domain.TranslateFlow {
		return domain.NewTranslateFlow(client, domain.TranslateSettings{
			SystemPrompt: translateCfg.SystemPrompt,
			Model:        llmCfg.Model,
			MaxTokens:    llmCfg.MaxTokens,
			Temperature:  llmCfg.Temperature,
		})
	}); err != nil {
		log.Fatalf("Failed to provide translate flow: %v", err)
	}

	return container
}

// newProviderRegistry registers echo always and OpenAI when an API key is set.
func newProviderRegistry(openaiCfg *openai.Config) (*registry.Registry, error) {
	ctx := context.Background()
	reg := registry.NewRegistry()

	if err := reg.Register(ctx, echo.NewProvider()); err != nil {
		return nil, fmt.Errorf("failed to register echo provider: %w", err)
	}

	if openaiCfg.APIKey == "" {
		return reg, nil
	}

	openaiProvider, err := openai.NewProvider(*openaiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI provider: %w", err)
	}
	if err := reg.Register(ctx, openaiProvider); err != nil {
		return nil, fmt.Errorf("failed to register OpenAI provider: %w", err)
	}

	return reg, nil
}

func newPricingRegistry() (domain.PricingRegistry, error) {
	ctx := context.Background()
	pricing := domain.NewInMemoryPricingRegistry()

	err := errors.Join(
		openai.RegisterPricing(ctx, pricing),
		echo.RegisterPricing(ctx, pricing),
	)
	if err != nil {
		return nil, err
	}

	return pricing, nil
}

// newAnswerStore returns a nil store when caching is not configured.
func newAnswerStore(cacheCfg *redis.Config) (domain.AnswerStore, error) {
	if !cacheCfg.Enabled() {
		return nil, nil
	}

	client, err := redis.NewClient(context.Background(), *cacheCfg)
	if err != nil {
		return nil, err
	}

	return redis.NewAnswerStore(client, cacheCfg.Prefix), nil
}
