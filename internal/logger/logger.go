// Package logger wires up the process-wide slog logger. Console runs get
// a tinted human-readable handler; "json" format switches to structured
// output for log collectors.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Init initializes the default logger exactly once. Level accepts
// debug/info/warn/error; format accepts console/json.
func Init(level, format string) {
	once.Do(func() {
		lvl := parseLevel(level)

		// Logs go to stderr: stdout is reserved for the rendered report.
		var handler slog.Handler
		if strings.EqualFold(format, "json") {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level:      lvl,
				TimeFormat: time.Kitchen,
			})
		}

		defaultLogger = slog.New(handler)
		slog.SetDefault(defaultLogger)
	})
}

// Get returns the initialized default logger, initializing with defaults
// if Init was never called.
func Get() *slog.Logger {
	Init("info", "console")
	return defaultLogger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs an informational message using the default logger.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	Get().Error(msg, args...)
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}
