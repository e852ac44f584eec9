package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Init initializes the global logger based on environment variables.
// DEBUG=true enables debug level logging, LOG_FORMAT=json switches to JSON output.
// klog (used by client-go) is routed into the same handler.
func Init() {
	once.Do(func() {
		level := slog.LevelInfo
		if os.Getenv("DEBUG") == "true" {
			level = slog.LevelDebug
		}
		install(newHandler(os.Stdout, level, os.Getenv("LOG_FORMAT")))
	})
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		// Add source file information if in debug mode
		AddSource: level == slog.LevelDebug,
	}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func install(handler slog.Handler) {
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	klog.SetLogger(logr.FromSlogHandler(handler))
}

func get() *slog.Logger {
	Init()
	return defaultLogger
}

// Debug logs at Debug level.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs at Info level.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs at Warn level.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs at Error level.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// DebugContext logs at Debug level with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	get().DebugContext(ctx, msg, args...)
}

// InfoContext logs at Info level with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	get().InfoContext(ctx, msg, args...)
}

// WarnContext logs at Warn level with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	get().WarnContext(ctx, msg, args...)
}

// ErrorContext logs at Error level with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	get().ErrorContext(ctx, msg, args...)
}

// Fatal logs at Error level and then exits.
func Fatal(msg string, args ...any) {
	get().Error(msg, args...)
	klog.Flush()
	os.Exit(1)
}

// With returns a new logger with the given attributes.
func With(args ...any) *slog.Logger {
	return get().With(args...)
}
