// Package logging provides structured logging for the page builder.
package logging

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Logger is the logging interface the rest of the module codes
// against.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is one structured log attribute.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field             { return Field{key, value} }
func Int(key string, value int) Field            { return Field{key, value} }
func Bool(key string, value bool) Field          { return Field{key, value} }
func Uint64(key string, value uint64) Field      { return Field{key, value} }
func Duration(key string, v time.Duration) Field { return Field{key, v} }
func Err(err error) Field                        { return Field{"error", err} }
func Any(key string, value any) Field            { return Field{key, value} }

// Options configure a logger.
type Options struct {
	Level  slog.Level
	Output io.Writer
	JSON   bool
}

// New creates a slog-backed logger. Nil-safe defaults: info level,
// stdout, text handler.
func New(opts Options) Logger {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(opts.Output, hopts)
	} else {
		h = slog.NewTextHandler(opts.Output, hopts)
	}
	return &slogLogger{l: slog.New(h)}
}

type slogLogger struct {
	l *slog.Logger
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func (s *slogLogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, attrs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...Field)  { s.l.Info(msg, attrs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, attrs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...Field) { s.l.Error(msg, attrs(fields)...) }

func (s *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{l: s.l.With(attrs(fields)...)}
}

// Nop discards everything. Handy default for tests.
type Nop struct{}

func (Nop) Debug(string, ...Field) {}
func (Nop) Info(string, ...Field)  {}
func (Nop) Warn(string, ...Field)  {}
func (Nop) Error(string, ...Field) {}
func (n Nop) With(...Field) Logger { return n }

// Requests wraps an http.Handler with method/path/status/duration
// logging.
func Requests(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				String("method", r.Method),
				String("path", r.URL.Path),
				Int("status", sw.status),
				Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
