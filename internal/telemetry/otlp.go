// Package telemetry exports traces of arrange and refresh passes to an
// OTLP endpoint.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"framed/internal/geom"
)

const instrumentation = "framed/internal/app"

// Exporter owns the tracer provider. A nil *Exporter is valid and traces
// nothing.
type Exporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewExporter creates an OTLP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is
// set. Returns nil if the endpoint is not configured.
func NewExporter(ctx context.Context) (*Exporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "framed"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return New(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// New wraps an existing provider.
func New(provider *sdktrace.TracerProvider) *Exporter {
	return &Exporter{
		provider: provider,
		tracer:   provider.Tracer(instrumentation),
	}
}

// Tracer returns the exporter's tracer, or a no-op tracer for a nil
// exporter.
func (e *Exporter) Tracer() oteltrace.Tracer {
	if e == nil {
		return noop.NewTracerProvider().Tracer(instrumentation)
	}
	return e.tracer
}

// StartArrange starts a span around a manager arrangement for a screen of
// the given size.
func StartArrange(ctx context.Context, t oteltrace.Tracer, manager string, size geom.Point) (context.Context, oteltrace.Span) {
	return t.Start(ctx, "framed.arrange", oteltrace.WithAttributes(
		attribute.String("framed.manager", manager),
		attribute.Int("framed.screen.height", size.Y),
		attribute.Int("framed.screen.width", size.X),
	))
}

// StartRefresh starts a span around a show, decorate and commit pass.
func StartRefresh(ctx context.Context, t oteltrace.Tracer, manager string, panels int) (context.Context, oteltrace.Span) {
	return t.Start(ctx, "framed.refresh", oteltrace.WithAttributes(
		attribute.String("framed.manager", manager),
		attribute.Int("framed.panels", panels),
	))
}

// Shutdown flushes and closes the exporter.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
