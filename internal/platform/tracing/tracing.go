package tracing

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
)

// Setup registers the global tracer provider so the reconciler and
// aggregator spans record. Returns a shutdown func that flushes pending
// spans; when tracing is disabled both returns are nil and the global
// tracer stays a no-op.
func Setup(cfg config.TracingConfig) (func(ctx context.Context) error, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
	if err != nil {
		return nil, fmt.Errorf("build span exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "zencaster-indexer"),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
