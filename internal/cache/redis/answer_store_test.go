package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/translateflow/internal/cache/redis"
	"github.com/davidbz/translateflow/internal/domain"
)

const testPrefix = "test:answer:"

// setupMiniredis starts a miniredis instance and returns a store bound to it.
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.AnswerStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, redis.NewAnswerStore(client, testPrefix)
}

func TestAnswerStore_SaveAndLoad(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()
	answer := &domain.CompletionAnswer{Message: "Hello, world.", Usage: domain.NewUsage(5, 7)}

	require.NoError(t, store.Save(ctx, "k1", answer, time.Hour))

	require.True(t, mr.Exists(testPrefix+"k1"))
	require.Equal(t, time.Hour, mr.TTL(testPrefix+"k1"))

	loaded, err := store.Load(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, answer, loaded)
}

func TestAnswerStore_Miss(t *testing.T) {
	_, store := setupMiniredis(t)

	loaded, err := store.Load(context.Background(), "absent")

	require.Nil(t, loaded)
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestAnswerStore_Expiry(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k1", &domain.CompletionAnswer{Message: "x"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "k1")
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestAnswerStore_CorruptEntry(t *testing.T) {
	mr, store := setupMiniredis(t)
	require.NoError(t, mr.Set(testPrefix+"bad", "not-json"))

	_, err := store.Load(context.Background(), "bad")

	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrCacheMiss)
	require.Contains(t, err.Error(), "failed to decode cached answer")
}

func TestAnswerStore_NilAnswer(t *testing.T) {
	_, store := setupMiniredis(t)

	err := store.Save(context.Background(), "k1", nil, time.Minute)

	require.Error(t, err)
}

func TestAnswerStore_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := redis.NewAnswerStore(client, testPrefix)
	mr.Close()

	_, err = store.Load(context.Background(), "k1")

	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrCacheMiss)
}

func TestNewClient(t *testing.T) {
	t.Run("should connect to running server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := redis.NewClient(context.Background(), redis.Config{Addr: mr.Addr()})

		require.NoError(t, err)
		require.NoError(t, client.Close())
	})

	t.Run("should reject empty address", func(t *testing.T) {
		client, err := redis.NewClient(context.Background(), redis.Config{})

		require.Error(t, err)
		require.Nil(t, client)
	})
}

func TestCachingCompleterWithRedis(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()
	calls := 0
	completer := completerFunc(func(_ context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error) {
		calls++
		return &domain.CompletionAnswer{Message: "EN: " + req.Prompt, Usage: domain.NewUsage(4, 4)}, nil
	})
	caching := domain.NewCachingCompleter(completer, store, time.Hour)
	req := &domain.CompletionRequest{SystemPrompt: "sys", Prompt: "Привет.", Model: "gpt-4o-mini", MaxTokens: 10}

	first, err := caching.Complete(ctx, req)
	require.NoError(t, err)
	second, err := caching.Complete(ctx, req)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Equal(t, first.Message, second.Message)
	require.Equal(t, domain.Usage{}, second.Usage)
}

type completerFunc func(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error)

func (f completerFunc) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error) {
	return f(ctx, req)
}
