// Package logger configures the process wide zerolog logger.
package logger

import (
    "context"
    "io"
    "os"
    "strings"
    "time"

    "github.com/rs/zerolog"
    zlog "github.com/rs/zerolog/log"
    "go.opentelemetry.io/otel/trace"
)

// New returns a logger writing JSON to w at the given level.  In the
// development environment output is rendered with a console writer.
// Unknown levels fall back to info.
func New(w io.Writer, level, env string, service string) zerolog.Logger {
    if w == nil {
        w = os.Stdout
    }
    lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
    if err != nil || level == "" {
        lvl = zerolog.InfoLevel
    }
    zerolog.TimeFieldFormat = time.RFC3339
    if env == "development" {
        w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
    }
    l := zerolog.New(w).Level(lvl).With().Timestamp().Str("service", service).Logger()
    zlog.Logger = l
    return l
}

// WithTrace returns the logger stored in ctx enriched with the trace id
// of the active span, if any.
func WithTrace(ctx context.Context) *zerolog.Logger {
    l := zlog.Ctx(ctx)
    sc := trace.SpanContextFromContext(ctx)
    if !sc.HasTraceID() {
        return l
    }
    ll := l.With().Str("trace_id", sc.TraceID().String()).Logger()
    return &ll
}
