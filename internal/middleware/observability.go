package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"
    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/attribute"
    "go.opentelemetry.io/otel/codes"
    "go.opentelemetry.io/otel/propagation"
    "go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request, continuing any trace the
// caller propagated in the request headers.
func Tracing(serviceName string) echo.MiddlewareFunc {
    tracer := otel.Tracer(serviceName)
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
            ctx, span := tracer.Start(ctx, req.Method+" "+c.Path(), trace.WithSpanKind(trace.SpanKindServer))
            defer span.End()
            c.SetRequest(req.WithContext(ctx))

            err := next(c)
            status := c.Response().Status
            span.SetAttributes(
                attribute.String("http.method", req.Method),
                attribute.String("http.route", c.Path()),
                attribute.Int("http.status_code", status),
            )
            if err != nil || status >= 500 {
                span.SetStatus(codes.Error, "request failed")
            }
            return err
        }
    }
}

// RequestLogger stores a request scoped logger (request id and trace id)
// in the request context and writes one access log line per request.
func RequestLogger(base zerolog.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            req := c.Request()

            lc := base.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
            if sc := trace.SpanContextFromContext(req.Context()); sc.HasTraceID() {
                lc = lc.Str("trace_id", sc.TraceID().String())
            }
            l := lc.Logger()
            c.SetRequest(req.WithContext(l.WithContext(req.Context())))

            err := next(c)
            if err != nil {
                c.Error(err)
            }

            status := c.Response().Status
            ev := l.Info()
            switch {
            case status >= 500:
                ev = l.Error().Err(err)
            case status >= 400:
                ev = l.Warn()
            }
            ev.Str("method", req.Method).
                Str("route", c.Path()).
                Str("uri", req.RequestURI).
                Int("status", status).
                Dur("latency", time.Since(start)).
                Str("remote_ip", c.RealIP()).
                Str("user", userKey(c)).
                Msg("request")
            return nil
        }
    }
}
