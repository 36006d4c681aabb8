// Package telemetry wires OpenTelemetry tracing and metrics around tool calls.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/bobmcallan/darwinbox-mcp/internal/config"
	"github.com/bobmcallan/darwinbox-mcp/internal/darwinbox"
)

// Telemetry records a span and execution metrics for every tool call.
// Safe for concurrent use.
type Telemetry struct {
	tracer       trace.Tracer
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Setup builds providers from cfg. Exporter output goes to w, never stdout,
// so the stdio transport stays clean. Disabled telemetry returns a no-op
// instance.
func Setup(ctx context.Context, cfg config.TelemetryConfig, version string, w io.Writer) (*Telemetry, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	metricOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	switch cfg.Exporter {
	case "stdout":
		spanExp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(spanExp))

		metricExp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics exporter: %w", err)
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)))
	case "none", "":
	default:
		return nil, fmt.Errorf("unknown telemetry exporter: %q", cfg.Exporter)
	}

	tp := sdktrace.NewTracerProvider(traceOpts...)
	mp := sdkmetric.NewMeterProvider(metricOpts...)

	t, err := New(tp.Tracer(cfg.ServiceName), mp.Meter(cfg.ServiceName))
	if err != nil {
		return nil, err
	}
	t.tracerProvider = tp
	t.meterProvider = mp
	return t, nil
}

// New creates instrumentation over an existing tracer and meter.
func New(tracer trace.Tracer, meter metric.Meter) (*Telemetry, error) {
	totalCount, err := meter.Int64Counter(
		"tool.exec.total",
		metric.WithDescription("Total number of tool executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"tool.exec.errors",
		metric.WithDescription("Total number of tool execution errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"tool.exec.duration_ms",
		metric.WithDescription("Tool execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		tracer:       tracer,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// Noop returns instrumentation that records nothing.
func Noop() *Telemetry {
	t, _ := New(
		tracenoop.NewTracerProvider().Tracer("noop"),
		metricnoop.NewMeterProvider().Meter("noop"),
	)
	return t
}

// StartTool opens the span for one tool call. The returned function ends the
// span and records metrics; call it exactly once with the call's error.
func (t *Telemetry) StartTool(ctx context.Context, tool, correlationID string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := t.tracer.Start(ctx, "tool.exec."+tool,
		trace.WithAttributes(
			attribute.String("tool.name", tool),
			attribute.String("correlation_id", correlationID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, func(err error) {
		attrs := []attribute.KeyValue{attribute.String("tool.name", tool)}
		if err != nil {
			kind := string(darwinbox.KindOf(err))
			attrs = append(attrs, attribute.String("error.kind", kind))
			span.SetStatus(codes.Error, darwinbox.MessageOf(err))
			span.SetAttributes(attribute.String("error.kind", kind))
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		opt := metric.WithAttributes(attrs...)
		t.totalCount.Add(ctx, 1, opt)
		if err != nil {
			t.errorCount.Add(ctx, 1, opt)
		}
		t.durationHist.Record(ctx, float64(time.Since(start).Milliseconds()), opt)
	}
}

// Shutdown flushes and stops the providers. Safe on a no-op instance.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
