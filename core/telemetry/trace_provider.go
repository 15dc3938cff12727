package telemetry

import (
	"context"
	"fmt"

	"github.com/anoideaopen/hotswap/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// CollectorEndpoint locates the OTLP collector receiving the spans.
type CollectorEndpoint struct {
	// Endpoint is the host and port of the collector. Tracing is disabled when empty.
	Endpoint string
	// CACerts holds base64 encoded PEM certificates. The connection is insecure
	// when empty.
	CACerts string
}

// InstallTraceProvider sets the global trace provider based on http otlp exporter
// and returns it. A nil or empty endpoint installs a no-op provider.
func InstallTraceProvider(
	settings *CollectorEndpoint,
	serviceName string,
) (trace.TracerProvider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if settings == nil || len(settings.Endpoint) == 0 {
		tracerProvider := noop.NewTracerProvider()
		otel.SetTracerProvider(tracerProvider)
		return tracerProvider, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.Endpoint)}
	if settings.CACerts == "" {
		opts = append(opts, otlptracehttp.WithInsecure())
	} else {
		tlsConfig, err := getTLSConfig(settings.CACerts)
		if err != nil {
			return nil, err
		}
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	}

	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version.Module(InstrumentationName))))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))
	otel.SetTracerProvider(tracerProvider)

	return tracerProvider, nil
}
