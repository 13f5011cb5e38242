// Package logger wraps slog with the handful of structured log shapes the
// application emits.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger embeds slog.Logger so call sites keep the standard Info/Warn/Error
// surface alongside the domain helpers below.
type Logger struct {
	*slog.Logger
}

// New builds a logger for the given environment. Development gets human
// readable text at debug level; everything else gets JSON at info.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// HTTPRequest emits one access-log line per request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// BatchSummary records the outcome of an automation batch run. failed counts
// leads whose writes errored; they are part of total but not processed.
func (l *Logger) BatchSummary(job string, total, processed, failed int) {
	l.Info("batch_summary",
		slog.String("job", job),
		slog.Int("total", total),
		slog.Int("processed", processed),
		slog.Int("failed", failed),
	)
}

// RateLimitExceeded records a throttled request.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
