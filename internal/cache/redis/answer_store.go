package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/translateflow/internal/domain"
)

// AnswerStore implements domain.AnswerStore on top of Redis string keys.
type AnswerStore struct {
	client *redis.Client
	prefix string
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis address is not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// NewAnswerStore creates a new Redis answer store.
func NewAnswerStore(client *redis.Client, prefix string) *AnswerStore {
	return &AnswerStore{
		client: client,
		prefix: prefix,
	}
}

// Load returns the answer stored under key, or domain.ErrCacheMiss.
func (s *AnswerStore) Load(ctx context.Context, key string) (*domain.CompletionAnswer, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load answer: %w", err)
	}

	var answer domain.CompletionAnswer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("failed to decode cached answer: %w", err)
	}

	return &answer, nil
}

// Save stores the answer under key for ttl. A zero ttl keeps it forever.
func (s *AnswerStore) Save(ctx context.Context, key string, answer *domain.CompletionAnswer, ttl time.Duration) error {
	if answer == nil {
		return errors.New("answer cannot be nil")
	}

	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}

	return nil
}
