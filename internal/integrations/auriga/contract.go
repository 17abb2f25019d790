package auriga

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder метрики обращений к провайдеру
type MetricsRecorder interface {
	ObserveProvider(operation, outcome string, duration time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveProvider(string, string, time.Duration) {}
