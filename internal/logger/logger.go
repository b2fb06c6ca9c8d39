// Package logger provides the structured logger used across backoffice.
// The TUI owns stdout, so all log output goes to a file.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
	ComponentKey = "component"
)

var (
	mu              sync.Mutex
	globalZapLogger *zap.Logger
	globalLogger    *logr.Logger
	logFile         *os.File

	defaultNoopLogger = logr.Discard()
)

// Options controls where and how verbosely the logger writes
type Options struct {
	Path  string // log file path; empty disables logging
	Level string // debug, info, warn, error
}

// Setup builds the global logger. Calling it again replaces the previous one.
func Setup(opts Options) (*logr.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Path == "" {
		closePrevious()
		globalLogger = &defaultNoopLogger
		return globalLogger, nil
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(level),
	)

	closePrevious()
	logFile = f
	globalZapLogger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	l := zapr.NewLogger(globalZapLogger)
	globalLogger = &l
	return globalLogger, nil
}

// WithLogger returns a context carrying log
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the context logger, the global logger, or a no-op logger
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	return Global()
}

// Global returns the configured logger or a no-op logger before Setup
func Global() *logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogger != nil {
		return globalLogger
	}
	return &defaultNoopLogger
}

// Named returns the global logger tagged with a component name
func Named(component string) logr.Logger {
	return Global().WithValues(ComponentKey, component)
}

// Sync flushes buffered entries and closes the log file
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	closePrevious()
}

func closePrevious() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
		}
		globalZapLogger = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EBADF) || errors.Is(err, os.ErrClosed)
}
