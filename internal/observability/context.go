package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RunIDKey holds the unique identifier of one translation run.
	RunIDKey contextKey = "run_id"

	// ProviderKey holds the provider name for this run.
	ProviderKey contextKey = "provider"

	// ModelKey holds the model name for this run.
	ModelKey contextKey = "model"

	// ChunkKey holds the 1-based index of the chunk being translated.
	ChunkKey contextKey = "chunk"
)

// WithRunID injects run ID into context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// WithProvider injects provider name into context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithModel injects model name into context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// WithChunk injects the chunk index into context.
func WithChunk(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, ChunkKey, index)
}

// GetRunID extracts run ID from context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// GetProvider extracts provider name from context.
func GetProvider(ctx context.Context) string {
	if provider, ok := ctx.Value(ProviderKey).(string); ok {
		return provider
	}
	return ""
}

// GetModel extracts model name from context.
func GetModel(ctx context.Context) string {
	if model, ok := ctx.Value(ModelKey).(string); ok {
		return model
	}
	return ""
}

// GetChunk extracts the chunk index from context. Zero means no chunk is set.
func GetChunk(ctx context.Context) int {
	if index, ok := ctx.Value(ChunkKey).(int); ok {
		return index
	}
	return 0
}

// GenerateRunID generates a unique run identifier (UUID).
func GenerateRunID() string {
	return uuid.New().String()
}
