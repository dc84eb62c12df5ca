package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/xerrors"
)

const instrumentationName = "screen-capture/internal/bridge"

type instrumented struct {
	next                                 Bridge
	tracer                               trace.Tracer
	bridgeInvocationDurationMicroSeconds metric.Int64Histogram
	logger                               *slog.Logger
}

// Instrument wraps next with a span, a duration histogram and failure logging
// per invocation. Nil providers and logger fall back to the global ones.
func Instrument(next Bridge, tracerProvider trace.TracerProvider, meterProvider metric.MeterProvider, logger *slog.Logger) (Bridge, error) {
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}
	if logger == nil {
		logger = slog.Default()
	}

	histogram, err := meterProvider.Meter(instrumentationName).Int64Histogram("bridge_invocation_duration_micro_seconds")
	if err != nil {
		return nil, xerrors.Errorf("failed to create histogram: %w", err)
	}

	return &instrumented{
		next:                                 next,
		tracer:                               tracerProvider.Tracer(instrumentationName),
		bridgeInvocationDurationMicroSeconds: histogram,
		logger:                               logger,
	}, nil
}

func (i *instrumented) Invoke(ctx context.Context, call Call) (any, error) {
	attributes := []attribute.KeyValue{
		attribute.Key("plugin").String(call.Plugin),
		attribute.Key("action").String(call.Action),
	}

	ctx, span := i.tracer.Start(ctx, fmt.Sprintf("%s.%s", call.Plugin, call.Action), trace.WithAttributes(attributes...))
	defer span.End()

	now := time.Now()
	result, err := i.next.Invoke(ctx, call)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		i.logger.With(
			slog.String("traceid", span.SpanContext().TraceID().String()),
			slog.String("spanid", span.SpanContext().SpanID().String()),
		).ErrorContext(ctx, "bridge invocation failed", "plugin", call.Plugin, "action", call.Action, "error", err)
	}

	i.bridgeInvocationDurationMicroSeconds.Record(ctx, time.Since(now).Microseconds(), metric.WithAttributes(
		append(attributes, attribute.Key("outcome").String(outcome))...,
	))

	return result, err
}
