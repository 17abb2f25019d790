package worker

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Результаты отложенной записи для метрик
const (
	OutcomeQueued    = "queued"
	OutcomeSucceeded = "succeeded"
	OutcomeRetried   = "retried"
	OutcomeDropped   = "dropped"
)

const (
	defaultQueueSize      = 256
	defaultAttempts       = 5
	defaultFirstDelay     = 2 * time.Second
	defaultMaxDelay       = time.Minute
	defaultMultiplier     = 2
	defaultAttemptTimeout = 10 * time.Second
)

// Config параметры отложенной записи; нулевые значения заменяются значениями по умолчанию
type Config struct {
	Attempts   int           // всего попыток на задачу, включая первую
	FirstDelay time.Duration // пауза после первой неудачи
	MaxDelay   time.Duration // потолок паузы
	Multiplier float64       // рост паузы с каждой неудачей
	QueueSize  int
}

type job struct {
	name    string
	fn      func(ctx context.Context) error
	attempt int
}

// PersistenceWorker повторяет запись в БД, которая не прошла после успешного ответа провайдера.
// Очередь в памяти: при рестарте процесса неотработанные задачи теряются и остаются только в логе.
type PersistenceWorker struct {
	queue          chan *job
	cfg            Config
	attemptTimeout time.Duration
	metrics        MetricsRecorder
	logger         Logger

	mu      sync.RWMutex
	stopped bool
}

// NewPersistenceWorker создает воркер
func NewPersistenceWorker(cfg Config, metrics MetricsRecorder, logger Logger) *PersistenceWorker {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.FirstDelay <= 0 {
		cfg.FirstDelay = defaultFirstDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = defaultMultiplier
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &PersistenceWorker{
		queue:          make(chan *job, cfg.QueueSize),
		cfg:            cfg,
		attemptTimeout: defaultAttemptTimeout,
		metrics:        metrics,
		logger:         logger,
	}
}

// Enqueue ставит запись в очередь; name вида "operation:key" используется в логах и метриках
func (w *PersistenceWorker) Enqueue(name string, fn func(ctx context.Context) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrStopped
	}

	select {
	case w.queue <- &job{name: name, fn: fn}:
		w.metrics.IncDeferredWrite(operationOf(name), OutcomeQueued)
		w.logger.Warn("PersistenceWorker: queued deferred write %s", name)
		return nil
	default:
		w.metrics.IncDeferredWrite(operationOf(name), OutcomeDropped)
		return ErrQueueFull
	}
}

// Start обрабатывает очередь до отмены ctx, затем пытается один раз выполнить оставшиеся задачи
func (w *PersistenceWorker) Start(ctx context.Context) {
	w.logger.Info("PersistenceWorker: started")
	defer w.logger.Info("PersistenceWorker: stopped")

	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case j := <-w.queue:
			w.process(ctx, j)
		}
	}
}

func (w *PersistenceWorker) process(ctx context.Context, j *job) {
	j.attempt++

	attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.attemptTimeout)
	err := j.fn(attemptCtx)
	cancel()

	op := operationOf(j.name)
	if err == nil {
		w.metrics.IncDeferredWrite(op, OutcomeSucceeded)
		w.logger.Info("PersistenceWorker: deferred write %s succeeded on attempt %d", j.name, j.attempt)
		return
	}

	if j.attempt >= w.cfg.Attempts {
		w.metrics.IncDeferredWrite(op, OutcomeDropped)
		w.logger.Error("PersistenceWorker: deferred write %s dropped after %d attempts: %v", j.name, j.attempt, err)
		return
	}

	delay := w.retryDelay(j.attempt)
	w.metrics.IncDeferredWrite(op, OutcomeRetried)
	w.logger.Warn("PersistenceWorker: deferred write %s attempt %d failed, retry in %s: %v", j.name, j.attempt, delay, err)
	w.schedule(j, delay)
}

// retryDelay пауза после неудачной попытки failed (с 1): FirstDelay, умноженная на Multiplier
// за каждую следующую неудачу, но не больше MaxDelay
func (w *PersistenceWorker) retryDelay(failed int) time.Duration {
	delay := w.cfg.FirstDelay
	for i := 1; i < failed && delay < w.cfg.MaxDelay; i++ {
		delay = time.Duration(float64(delay) * w.cfg.Multiplier)
	}
	return min(delay, w.cfg.MaxDelay)
}

func (w *PersistenceWorker) schedule(j *job, delay time.Duration) {
	time.AfterFunc(delay, func() {
		w.mu.RLock()
		defer w.mu.RUnlock()
		if w.stopped {
			w.logger.Error("PersistenceWorker: deferred write %s lost on shutdown", j.name)
			return
		}

		select {
		case w.queue <- j:
		default:
			w.metrics.IncDeferredWrite(operationOf(j.name), OutcomeDropped)
			w.logger.Error("PersistenceWorker: queue full, deferred write %s dropped", j.name)
		}
	})
}

// drain последняя попытка для задач, оставшихся в очереди при остановке
func (w *PersistenceWorker) drain() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	for {
		select {
		case j := <-w.queue:
			j.attempt = w.cfg.Attempts - 1
			w.process(context.Background(), j)
		default:
			return
		}
	}
}

func operationOf(name string) string {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i]
	}
	return name
}
