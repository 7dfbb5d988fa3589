// Package registry holds the providers a run can translate with and picks
// one for the configured provider name or model.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/translateflow/internal/domain"
	"github.com/davidbz/translateflow/internal/observability"
)

// Registry implements domain.ProviderRegistry. Models a provider lists in
// SupportedModels form its catalog; models outside every catalog are routed
// by asking each provider in name order whether it accepts them.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]domain.Provider
	catalog   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]domain.Provider),
		catalog:   make(map[string]string),
	}
}

// Register adds a provider. A catalog model already claimed by an earlier
// provider keeps its first owner.
func (r *Registry) Register(ctx context.Context, provider domain.Provider) error {
	if provider == nil {
		return errors.New("provider cannot be nil")
	}
	name := provider.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}
	r.providers[name] = provider

	for _, model := range provider.SupportedModels(ctx) {
		if _, claimed := r.catalog[model]; !claimed {
			r.catalog[model] = name
		}
	}

	return nil
}

func (r *Registry) Get(_ context.Context, providerName string) (domain.Provider, error) {
	if providerName == "" {
		return nil, errors.New("provider name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[providerName]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", providerName)
	}
	return provider, nil
}

// List returns provider names sorted.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(), nil
}

// GetByModel returns the catalog owner of model, or else the first provider
// in name order whose IsModelSupported accepts it.
func (r *Registry) GetByModel(ctx context.Context, model string) (domain.Provider, error) {
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, ok := r.catalog[model]; ok {
		return r.providers[name], nil
	}

	for _, name := range r.sortedNames() {
		provider := r.providers[name]
		if !provider.IsModelSupported(ctx, model) {
			continue
		}
		observability.FromContext(observability.WithModel(ctx, model)).Info(
			"model is not in any provider catalog, routing by capability",
			observability.String("provider", name),
		)
		return provider, nil
	}

	return nil, fmt.Errorf("no provider found for model: %s", model)
}

// Resolve picks a provider by name, or by model when providerName is empty.
func (r *Registry) Resolve(ctx context.Context, providerName, model string) (domain.Provider, error) {
	if providerName != "" {
		return r.Get(ctx, providerName)
	}
	return r.GetByModel(ctx, model)
}

// sortedNames expects r.mu to be held.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
