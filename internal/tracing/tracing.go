// Package tracing sets up OpenTelemetry span export for interpreter sessions.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/forkline/internal/config"
	"github.com/zjrosen/forkline/internal/log"
)

// TracerName is the instrumentation scope of forkline spans.
const TracerName = "github.com/zjrosen/forkline"

// Provider owns the tracer provider and whatever sink its exporter writes to.
type Provider struct {
	provider trace.TracerProvider
	shutdown []func(context.Context) error
}

// Noop returns a provider whose spans are discarded.
func Noop() *Provider {
	return &Provider{provider: noop.NewTracerProvider()}
}

// New builds a provider from cfg. Disabled tracing yields Noop().
func New(ctx context.Context, cfg config.TracingConfig) (*Provider, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}

	switch cfg.Exporter {
	case "stdout":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		p, err := NewWithWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		p.shutdown = append(p.shutdown, func(context.Context) error { return f.Close() })
		log.Info(log.CatTrace, "Tracing to file", "path", cfg.File)
		return p, nil

	case "otlp":
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		log.Info(log.CatTrace, "Tracing to OTLP collector", "endpoint", cfg.Endpoint)
		return fromExporter(exp, sdktrace.WithBatcher(exp)), nil

	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
}

// NewWithWriter exports spans as JSON to w, synchronously.
func NewWithWriter(w io.Writer) (*Provider, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}
	return fromExporter(exp, sdktrace.WithSyncer(exp)), nil
}

func fromExporter(exp sdktrace.SpanExporter, opt sdktrace.TracerProviderOption) *Provider {
	tp := sdktrace.NewTracerProvider(opt)
	return &Provider{
		provider: tp,
		shutdown: []func(context.Context) error{tp.Shutdown},
	}
}

// Tracer returns the forkline tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(TracerName)
}

// Shutdown flushes pending spans and releases the exporter's sink.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
