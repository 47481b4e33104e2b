// Package tracing wires OpenTelemetry with a Jaeger exporter.
package tracing

import (
    "context"

    "github.com/rs/zerolog"
    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/exporters/jaeger"
    "go.opentelemetry.io/otel/propagation"
    "go.opentelemetry.io/otel/sdk/resource"
    sdktrace "go.opentelemetry.io/otel/sdk/trace"
    semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

// Init registers a global TracerProvider exporting to the Jaeger
// collector at endpoint.  With an empty endpoint the global no-op
// provider stays in place and the returned Shutdown does nothing.
func Init(serviceName, endpoint string, log zerolog.Logger) (Shutdown, error) {
    otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
    if endpoint == "" {
        log.Info().Msg("tracing disabled (JAEGER_ENDPOINT not set)")
        return func(context.Context) error { return nil }, nil
    }

    exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
    if err != nil {
        return nil, err
    }
    tp := sdktrace.NewTracerProvider(
        sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
        sdktrace.WithBatcher(exporter),
        sdktrace.WithResource(resource.NewWithAttributes(
            semconv.SchemaURL,
            semconv.ServiceNameKey.String(serviceName),
        )),
    )
    otel.SetTracerProvider(tp)

    log.Info().Str("endpoint", endpoint).Msg("tracing initialized")
    return tp.Shutdown, nil
}
