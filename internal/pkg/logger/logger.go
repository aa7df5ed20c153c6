package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options configures the global logger.
type Options struct {
	Level  string
	Format string
	// File, when set, receives log records in addition to Output.
	File string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	zapLogger    *zap.Logger
	closers      []io.Closer
)

// ParseLevel converts a textual level into slog.Level. Unknown values map to INFO.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Init builds the global logger. JSON output goes through a zap core bridged
// into slog, console output uses tint.
func Init(opts Options) error {
	level, known := ParseLevel(opts.Level)

	base := opts.Output
	if base == nil {
		base = os.Stdout
	}
	writers := []io.Writer{base}
	var fileCloser io.Closer
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		writers = append(writers, f)
		fileCloser = f
	}
	out := io.MultiWriter(writers...)

	var (
		handler slog.Handler
		zl      *zap.Logger
	)
	switch strings.ToLower(opts.Format) {
	case FormatConsole:
		handler = tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
		zl = zap.New(newZapCore(out, level, false))
	case FormatJSON, "":
		core := newZapCore(out, level, true)
		zl = zap.New(core)
		handler = zapslog.NewHandler(core)
	default:
		if fileCloser != nil {
			_ = fileCloser.Close()
		}
		return fmt.Errorf("unsupported log format %q", opts.Format)
	}

	mu.Lock()
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
	if fileCloser != nil {
		closers = append(closers, fileCloser)
	}
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
	globalLogger = slog.New(handler)
	zapLogger = zl
	slog.SetDefault(globalLogger)
	mu.Unlock()

	if !known {
		Warn("Invalid log level string, defaulting to INFO", "input", opts.Level)
	}
	return nil
}

// InitSlog initializes the global logger with JSON output at the given level.
func InitSlog(levelStr string) {
	if err := Init(Options{Level: levelStr, Format: FormatJSON}); err != nil {
		slog.Error("Failed to initialize logger", "error", err)
	}
}

func newZapCore(w io.Writer, level slog.Level, jsonEncoding bool) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if jsonEncoding {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewCore(enc, zapcore.AddSync(w), zapLevel(level))
}

// Sync flushes buffered records and closes the log file.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}

// ensureInitialized проверяет, инициализирован ли логгер.
func ensureInitialized() *slog.Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l == nil {
		InitSlog("INFO")
		mu.RLock()
		l = globalLogger
		mu.RUnlock()
	}
	return l
}

// Zap returns the zap logger backing the global logger. Used by HTTP middleware.
func Zap() *zap.Logger {
	ensureInitialized()
	mu.RLock()
	defer mu.RUnlock()
	return zapLogger
}

// Slog returns the global slog logger.
func Slog() *slog.Logger {
	return ensureInitialized()
}

func logAt(level slog.Level, msg string, args ...any) {
	l := ensureInitialized()
	ctx := context.Background()
	if l.Enabled(ctx, level) {
		l.Log(ctx, level, msg, args...)
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) { logAt(slog.LevelDebug, msg, args...) }

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) { logAt(slog.LevelInfo, msg, args...) }

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) { logAt(slog.LevelWarn, msg, args...) }

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) { logAt(slog.LevelError, msg, args...) }

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	// Логируем всегда перед выходом, независимо от Enabled, т.к. это Fatal
	ensureInitialized().Error(msg, args...)
	Sync()
	os.Exit(1)
}
