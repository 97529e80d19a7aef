package logger

import "log/slog"

// Interface is the logger handed to usecases and handlers so they can be
// tested with a mock instead of the process-wide slog instance.
type Interface interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	With(args ...any) Interface
	Named(name string) Interface
}

type slogLogger struct {
	logger *slog.Logger
}

func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Named(name string) Interface {
	return &slogLogger{logger: l.logger.With("logger", name)}
}
