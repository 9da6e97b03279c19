package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"framed/internal/geom"
)

func TestNewExporterDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	e, err := NewExporter(context.Background())
	require.NoError(t, err)
	assert.Nil(t, e)

	// A nil exporter still hands out a usable tracer.
	_, span := StartRefresh(context.Background(), e.Tracer(), "stack", 2)
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, e.Shutdown(context.Background()))
}

func TestSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	e := New(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	ctx := context.Background()

	ctx, arrange := StartArrange(ctx, e.Tracer(), "multiplex", geom.Pt(24, 80))
	_, refresh := StartRefresh(ctx, e.Tracer(), "multiplex", 3)
	refresh.End()
	arrange.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "framed.refresh", spans[0].Name())
	assert.Equal(t, "framed.arrange", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Contains(t, spans[1].Attributes(), attribute.Int("framed.screen.width", 80))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("framed.panels", 3))

	require.NoError(t, e.Shutdown(context.Background()))
}
