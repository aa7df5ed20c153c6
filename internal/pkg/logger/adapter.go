package logger

import (
	"io"
	"log/slog"

	"simulation_preview/internal/app/port"
)

// slogAdapter реализует интерфейс port.Logger поверх slog.
// With-атрибуты накапливаются в собственном *slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewAdapter wraps an arbitrary slog.Logger, e.g. one built in tests.
func NewAdapter(l *slog.Logger) port.Logger {
	return &slogAdapter{l: l}
}

func (a *slogAdapter) logger() *slog.Logger {
	if a.l != nil {
		return a.l
	}
	return Slog()
}

func (a *slogAdapter) Info(msg string, args ...any) { a.logger().Info(msg, args...) }

func (a *slogAdapter) Debug(msg string, args ...any) { a.logger().Debug(msg, args...) }

func (a *slogAdapter) Warn(msg string, args ...any) { a.logger().Warn(msg, args...) }

func (a *slogAdapter) Error(msg string, args ...any) { a.logger().Error(msg, args...) }

// With returns an adapter that adds args to every record.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{l: a.logger().With(args...)}
}

// Nop returns a logger that discards everything.
func Nop() port.Logger {
	return &slogAdapter{l: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}
