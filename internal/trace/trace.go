// Package trace provides support for tracing.
package trace

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Set of supported exporters.
const (
	ExporterDiscard = "discard"
	ExporterStdout  = "stdout"
	ExporterOTLP    = "otlp"
)

type Config struct {
	Env      string
	Endpoint string
	Service  string
	Exporter string

	// Writer receives spans when Exporter is ExporterStdout.
	Writer io.Writer

	SampleFraction float64
}

func NewProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.Exporter {
	case ExporterDiscard, "":
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = io.Discard
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w))
	case ExporterOTLP:
		exporter, err = otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
		))
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleFraction)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Service),
			attribute.String("environment", cfg.Env),
		)),
	)

	return provider, nil
}
