package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Decorator holds the tracer, logger and meter shared by the service decorators of each bounded context.
type Decorator struct {
	tracer trace.Tracer
	logger *slog.Logger
	meter  metric.Meter
}

// Option customizes a Decorator.
type Option func(*Decorator)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Decorator) {
		d.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(d *Decorator) {
		d.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(d *Decorator) {
		d.meter = m
	}
}

// NewDecorator applies opts over no-op defaults.
func NewDecorator(tracerName string, opts ...Option) *Decorator {
	d := &Decorator{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.tracer == nil {
		d.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if d.meter == nil {
		d.meter = metricnoop.NewMeterProvider().Meter(tracerName)
	}
	return d
}

// Start opens a span for one use case.
func (d *Decorator) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Counter registers an Int64 counter; registration failures yield a no-op counter.
func (d *Decorator) Counter(name, description string) metric.Int64Counter {
	counter, err := d.meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		counter, _ = metricnoop.NewMeterProvider().Meter("noop").Int64Counter(name)
	}
	return counter
}

func (d *Decorator) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if d.logger == nil {
		return
	}
	d.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Fail records err on span, logs it and hands it back to the caller.
func (d *Decorator) Fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if d.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		d.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}
