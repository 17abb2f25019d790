package worker

import "errors"

var (
	// ErrQueueFull возвращается, когда очередь отложенных записей заполнена
	ErrQueueFull = errors.New("worker: deferred write queue is full")

	// ErrStopped возвращается после остановки воркера
	ErrStopped = errors.New("worker: deferred writer stopped")
)
