package worker

// MetricsRecorder счётчик результатов отложенных записей
type MetricsRecorder interface {
	IncDeferredWrite(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopMetrics struct{}

func (nopMetrics) IncDeferredWrite(string, string) {}
