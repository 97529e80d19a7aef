package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	sharedConfig "coursekit/internal/shared/config"
)

var (
	defaultLogger *slog.Logger
	atomicLevel   *slog.LevelVar
)

// Init configures the process-wide logger from configuration.
func Init(cfg *sharedConfig.LoggerConfig) error {
	atomicLevel = new(slog.LevelVar)
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	atomicLevel.Set(level)

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writer = file
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: atomicLevel})
	} else {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      atomicLevel,
			TimeFormat: time.DateTime,
			NoColor:    !isTerminal(writer),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)

	return nil
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func SetLevel(level slog.Level) {
	if atomicLevel != nil {
		atomicLevel.Set(level)
	}
}

// Get returns the configured logger, falling back to a sane console logger
// when Init was never called (tests, one-off tooling).
func Get() *slog.Logger {
	if defaultLogger == nil {
		handler := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.DateTime,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
		defaultLogger = slog.New(handler)
		slog.SetDefault(defaultLogger)
	}
	return defaultLogger
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}

func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}
