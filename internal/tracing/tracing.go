// Package tracing sets up the OpenTelemetry tracer provider of the CLI.
package tracing

import (
	"fmt"

	"github.com/johanneslochmann/qtorm/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewProvider builds a tracer provider exporting to zipkin or jaeger. With
// no exporter configured spans are recorded but never exported.
func NewProvider(cfg config.TraceConfig) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	}

	exp, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newExporter(cfg config.TraceConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "":
		return nil, nil
	case "zipkin":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "http://localhost:9411/api/v2/spans"
		}
		return zipkin.New(endpoint)
	case "jaeger":
		var opts []jaeger.CollectorEndpointOption
		if cfg.Endpoint != "" {
			opts = append(opts, jaeger.WithEndpoint(cfg.Endpoint))
		}
		return jaeger.New(jaeger.WithCollectorEndpoint(opts...))
	default:
		return nil, fmt.Errorf("tracing: unknown exporter %q", cfg.Exporter)
	}
}
