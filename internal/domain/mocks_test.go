package domain_test

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/translateflow/internal/domain"
	"github.com/davidbz/translateflow/internal/observability"
)

// mockCompleter is a scripted Completer for testing.
type mockCompleter struct {
	mu           sync.Mutex
	completeFunc func(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error)
	requests     []domain.CompletionRequest
}

func (m *mockCompleter) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionAnswer, error) {
	m.mu.Lock()
	m.requests = append(m.requests, *req)
	m.mu.Unlock()

	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}
	return &domain.CompletionAnswer{Message: req.Prompt, Usage: domain.NewUsage(1, 1)}, nil
}

func (m *mockCompleter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// sleepRecorder captures requested pauses without blocking.
type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.delays = append(s.delays, d)
}

// observeLogs installs an in-memory logger for the duration of the test.
func observeLogs(t interface{ Cleanup(func()) }) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(nil) })
	return logs
}
