package domain

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/davidbz/translateflow/internal/observability"
)

const outputFileMode = 0o644

// RetryingCompleter completes a request with bounded retries.
type RetryingCompleter interface {
	CompleteWithRetries(ctx context.Context, req *CompletionRequest) (*CompletionAnswer, error)
}

// TranslateSettings holds the fixed request parameters used for every chunk.
type TranslateSettings struct {
	SystemPrompt string
	Model        string
	MaxTokens    int
	Temperature  float64
}

// TranslateFlow translates a file chunk by chunk.
type TranslateFlow struct {
	client   RetryingCompleter
	settings TranslateSettings
}

// NewTranslateFlow creates a new translate flow (DI constructor).
func NewTranslateFlow(client RetryingCompleter, settings TranslateSettings) *TranslateFlow {
	return &TranslateFlow{
		client:   client,
		settings: settings,
	}
}

// Run reads inputPath, translates each chunk in order and adds every call's
// usage to totalUsage. The output file is overwritten after each chunk, so
// it ends up holding only the last chunk's translation. The first failure
// aborts the run; usage and output written so far are kept.
func (f *TranslateFlow) Run(ctx context.Context, totalUsage *Usage, inputPath, outputPath string) error {
	if totalUsage == nil {
		return errors.New("total usage cannot be nil")
	}

	ctx = observability.WithModel(ctx, f.settings.Model)
	logger := observability.FromContext(ctx)
	logger.Debug("translate flow started",
		observability.String("input_path", inputPath),
		observability.String("output_path", outputPath),
	)

	original, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	chunks := SplitChunks(string(original))
	if len(chunks) == 0 {
		logger.Warn("no sentence-terminal punctuation found, nothing to translate",
			observability.Int("input_bytes", len(original)),
		)
		return nil
	}

	logger.Info("input split into chunks", observability.Int("chunks", len(chunks)))

	for i, chunk := range chunks {
		chunkCtx := observability.WithChunk(ctx, i+1)

		answer, err := f.client.CompleteWithRetries(chunkCtx, &CompletionRequest{
			SystemPrompt: f.settings.SystemPrompt,
			Prompt:       chunk,
			Model:        f.settings.Model,
			MaxTokens:    f.settings.MaxTokens,
			Temperature:  f.settings.Temperature,
		})
		if err != nil {
			return fmt.Errorf("failed to translate chunk %d of %d: %w", i+1, len(chunks), err)
		}

		observability.FromContext(chunkCtx).Info("received answer",
			observability.Int("input_tokens", answer.Usage.InputTokens),
			observability.Int("output_tokens", answer.Usage.OutputTokens),
			observability.Int("message_length", len(answer.Message)),
		)

		totalUsage.Accumulate(answer.Usage)

		if err := os.WriteFile(outputPath, []byte(answer.Message), outputFileMode); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	logger.Debug("translate flow finished", observability.Int("total_tokens", totalUsage.TotalTokens()))

	return nil
}
