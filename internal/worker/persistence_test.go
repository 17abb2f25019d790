package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TaxiClass-ReservationService/pkg/logger"
)

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{counts: make(map[string]int)}
}

func (m *countingMetrics) IncDeferredWrite(operation, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[operation+"/"+outcome]++
}

func (m *countingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func fastConfig(attempts, queueSize int) Config {
	return Config{Attempts: attempts, FirstDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2, QueueSize: queueSize}
}

func TestPersistenceWorker_RetryDelay(t *testing.T) {
	w := NewPersistenceWorker(Config{FirstDelay: time.Second, MaxDelay: 5 * time.Second, Multiplier: 2}, nil, logger.Nop())

	assert.Equal(t, time.Second, w.retryDelay(0))
	assert.Equal(t, time.Second, w.retryDelay(1))
	assert.Equal(t, 2*time.Second, w.retryDelay(2))
	assert.Equal(t, 4*time.Second, w.retryDelay(3))
	assert.Equal(t, 5*time.Second, w.retryDelay(4))
	assert.Equal(t, 5*time.Second, w.retryDelay(40))

	defaults := NewPersistenceWorker(Config{}, nil, logger.Nop())
	assert.Equal(t, defaultFirstDelay, defaults.retryDelay(1))
	assert.Equal(t, defaultMaxDelay, defaults.retryDelay(100))
}

func TestPersistenceWorker_SucceedsAfterRetries(t *testing.T) {
	m := newCountingMetrics()
	w := NewPersistenceWorker(fastConfig(5, 8), m, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	var calls int32
	done := make(chan struct{})
	err := w.Enqueue("reservation_create:B1", func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("db down")
		}
		close(done)
		return nil
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("deferred write was not retried")
	}

	assert.Eventually(t, func() bool { return m.get("reservation_create/succeeded") == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, m.get("reservation_create/queued"))
	assert.Equal(t, 2, m.get("reservation_create/retried"))
}

func TestPersistenceWorker_DropsAfterMaxRetries(t *testing.T) {
	m := newCountingMetrics()
	w := NewPersistenceWorker(fastConfig(3, 8), m, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	var calls int32
	require.NoError(t, w.Enqueue("reservation_cancel:B2", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("still down")
	}))

	assert.Eventually(t, func() bool { return m.get("reservation_cancel/dropped") == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPersistenceWorker_QueueFull(t *testing.T) {
	m := newCountingMetrics()
	w := NewPersistenceWorker(fastConfig(1, 1), m, logger.Nop())
	noop := func(context.Context) error { return nil }

	require.NoError(t, w.Enqueue("op:1", noop))
	assert.ErrorIs(t, w.Enqueue("op:2", noop), ErrQueueFull)
	assert.Equal(t, 1, m.get("op/dropped"))
}

func TestPersistenceWorker_DrainsOnShutdown(t *testing.T) {
	w := NewPersistenceWorker(fastConfig(5, 8), nil, logger.Nop())

	var calls int32
	require.NoError(t, w.Enqueue("op:1", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	// Задача могла выполниться в основном цикле или при остановке, но ровно один раз
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.ErrorIs(t, w.Enqueue("op:2", func(context.Context) error { return nil }), ErrStopped)
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "reservation_create", operationOf("reservation_create:B1"))
	assert.Equal(t, "plain", operationOf("plain"))
}
