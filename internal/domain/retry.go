package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/translateflow/internal/observability"
)

const (
	// DefaultRetryAttempts is the retry bound, first attempt included.
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = 5 * time.Second
)

// ErrRetriesExhausted matches every RetriesExhaustedError via errors.Is.
var ErrRetriesExhausted = errors.New("retries exhausted")

// RetriesExhaustedError is returned once every attempt has failed.
// It wraps the last failure.
type RetriesExhaustedError struct {
	Attempts int
	Model    string
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("LLM call to %q failed after %d attempts: %v", e.Model, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRetriesExhausted.
func (e *RetriesExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}

// RetryOption customizes a RetryingClient.
type RetryOption func(*RetryingClient)

// WithSleep replaces the function used to pause between attempts.
func WithSleep(sleep func(time.Duration)) RetryOption {
	return func(c *RetryingClient) {
		c.sleep = sleep
	}
}

// RetryingClient retries a Completer a bounded number of times with a fixed delay.
type RetryingClient struct {
	completer Completer
	attempts  int
	delay     time.Duration
	sleep     func(time.Duration)
}

// NewRetryingClient creates a retrying client (DI constructor).
// At least one attempt is always made; a negative delay means no pause.
func NewRetryingClient(completer Completer, attempts int, delay time.Duration, opts ...RetryOption) *RetryingClient {
	c := &RetryingClient{
		completer: completer,
		attempts:  max(attempts, 1),
		delay:     max(delay, 0),
		sleep:     time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Attempts returns the retry bound.
func (c *RetryingClient) Attempts() int {
	return c.attempts
}

// Delay returns the pause between attempts.
func (c *RetryingClient) Delay() time.Duration {
	return c.delay
}

// CompleteWithRetries calls the wrapped Completer until it succeeds or the
// retry bound is reached. The pause between attempts does not observe ctx.
func (c *RetryingClient) CompleteWithRetries(ctx context.Context, req *CompletionRequest) (*CompletionAnswer, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(observability.WithModel(ctx, req.Model))

	failures := 0
	for {
		answer, err := c.completer.Complete(ctx, req)
		if err == nil {
			return answer, nil
		}

		failures++
		logger.Warn("LLM call failed",
			observability.Int("attempt", failures),
			observability.Int("max_attempts", c.attempts),
			observability.Duration("retry_delay", c.delay),
			observability.Error(err),
		)

		if failures >= c.attempts {
			logger.Error("all LLM call attempts exhausted",
				observability.Int("max_attempts", c.attempts),
				observability.Error(err),
			)
			return nil, &RetriesExhaustedError{
				Attempts: failures,
				Model:    req.Model,
				Err:      err,
			}
		}

		c.sleep(c.delay)
	}
}
