package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/davidbz/translateflow/internal/observability"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// CachingCompleter serves repeated requests from an AnswerStore.
// Cached answers carry zero usage since no tokens were spent on them.
type CachingCompleter struct {
	next  Completer
	store AnswerStore
	ttl   time.Duration
}

// NewCachingCompleter wraps next with store. A nil store disables caching.
func NewCachingCompleter(next Completer, store AnswerStore, ttl time.Duration) *CachingCompleter {
	return &CachingCompleter{
		next:  next,
		store: store,
		ttl:   ttl,
	}
}

// Complete returns a cached answer when one exists, otherwise calls through and stores the result.
func (c *CachingCompleter) Complete(ctx context.Context, req *CompletionRequest) (*CompletionAnswer, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if c.store == nil {
		return c.next.Complete(ctx, req)
	}

	logger := observability.FromContext(ctx)
	key := CacheKey(req)

	cached, err := c.store.Load(ctx, key)
	switch {
	case err == nil && cached != nil:
		logger.Debug("cache HIT - skipping LLM call")
		return &CompletionAnswer{Message: cached.Message, Usage: Usage{}}, nil
	case err != nil && !errors.Is(err, ErrCacheMiss):
		logger.Warn("cache load failed, continuing without cache", observability.Error(err))
	}

	answer, err := c.next.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if saveErr := c.store.Save(ctx, key, answer, c.ttl); saveErr != nil {
		logger.Warn("failed to store answer in cache", observability.Error(saveErr))
	}

	return answer, nil
}

// CacheKey derives a stable key from every field that influences the answer.
func CacheKey(req *CompletionRequest) string {
	// Marshalling a flat struct of strings and numbers cannot fail.
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
