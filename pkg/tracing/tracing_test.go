package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func searchConfig(rate float64) Config {
	return Config{
		ServiceName: "flightschool-search",
		Environment: "test",
		// Non-routable endpoint; the batched exporter never connects
		// during init.
		OTLPEndpoint: "127.0.0.1:0",
		SampleRate:   rate,
		Enabled:      true,
	}
}

func TestInitTracer_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{Enabled: false})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_SetsGlobalProvider(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), searchConfig(1.0))
	require.NoError(t, err)
	defer shutdown(context.Background()) //nolint:errcheck

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "global provider should be the SDK provider")
}

func TestInitTracer_SampleRates(t *testing.T) {
	for _, rate := range []float64{0.0, 0.25, 1.0} {
		shutdown, err := InitTracer(context.Background(), searchConfig(rate))
		require.NoError(t, err, "rate %v", rate)
		_ = shutdown(context.Background())
	}
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1.0).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0.0).Description())
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased")
}
