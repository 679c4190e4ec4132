package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type Observability struct {
	Tracer oteltrace.Tracer
	Meter  metric.Meter

	traceProvider *sdktrace.TracerProvider
	CheckCounter  metric.Int64Counter
	CheckDuration metric.Int64Histogram
	GenCounter    metric.Int64Counter
	RateLimited   metric.Int64Counter
}

func SetupObservability(ctx context.Context, cfg ObservabilityConfig) (*Observability, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "passguard-api"
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}
	sampler := sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	if cfg.OTLPEndpoint != "" {
		exporter, exportErr := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if exportErr != nil {
			return nil, fmt.Errorf("create otlp trace exporter: %w", exportErr)
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler),
		)
	} else {
		slog.Info("otel trace exporter not configured; using local tracer provider")
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	meter := otel.Meter(serviceName)
	tracer := otel.Tracer(serviceName)
	checkCounter, _ := meter.Int64Counter("passguard_check_total")
	checkDuration, _ := meter.Int64Histogram("passguard_check_duration_ms")
	genCounter, _ := meter.Int64Counter("passguard_generate_total")
	rateLimited, _ := meter.Int64Counter("passguard_rate_limited_total")
	return &Observability{
		Tracer:        tracer,
		Meter:         meter,
		traceProvider: tp,
		CheckCounter:  checkCounter,
		CheckDuration: checkDuration,
		GenCounter:    genCounter,
		RateLimited:   rateLimited,
	}, nil
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.traceProvider == nil {
		return nil
	}
	return o.traceProvider.Shutdown(ctx)
}

func (o *Observability) MarkCheck(ctx context.Context, strength string, durationMS int64) {
	if o == nil {
		return
	}
	o.CheckCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strength", strength),
	))
	o.CheckDuration.Record(ctx, durationMS, metric.WithAttributes(
		attribute.String("strength", strength),
	))
}

func (o *Observability) MarkGenerate(ctx context.Context) {
	if o == nil {
		return
	}
	o.GenCounter.Add(ctx, 1)
}

func (o *Observability) MarkRateLimited(ctx context.Context, route string) {
	if o == nil {
		return
	}
	o.RateLimited.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
	))
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
