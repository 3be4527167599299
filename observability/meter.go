package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/apiwire/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the embedding service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for resolver observability.
type Metrics struct {
	resolveTotal      metric.Int64Counter
	constructTotal    metric.Int64Counter
	constructDuration metric.Float64Histogram
	cacheHitTotal     metric.Int64Counter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolveTotal, err := meter.Int64Counter("apiwire.resolve.total",
		metric.WithDescription("Total number of resolution requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiwire.resolve.total counter: %w", err)
	}

	constructTotal, err := meter.Int64Counter("apiwire.construct.total",
		metric.WithDescription("Total number of factory invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiwire.construct.total counter: %w", err)
	}

	constructDuration, err := meter.Float64Histogram("apiwire.construct.duration",
		metric.WithDescription("Duration of factory invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiwire.construct.duration histogram: %w", err)
	}

	cacheHitTotal, err := meter.Int64Counter("apiwire.cache.hit.total",
		metric.WithDescription("Total number of resolutions served from cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiwire.cache.hit.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("apiwire.error.total",
		metric.WithDescription("Total errors by type and reference"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating apiwire.error.total counter: %w", err)
	}

	return &Metrics{
		resolveTotal:      resolveTotal,
		constructTotal:    constructTotal,
		constructDuration: constructDuration,
		cacheHitTotal:     cacheHitTotal,
		errorTotal:        errorTotal,
	}, nil
}

// RecordResolve records one top-level resolution request.
func (m *Metrics) RecordResolve(ctx context.Context, ref, status string) {
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ref", ref),
		attribute.String("status", status),
	))
}

// RecordConstruct records one factory invocation.
func (m *Metrics) RecordConstruct(ctx context.Context, ref, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("ref", ref),
		attribute.String("status", status),
	)
	m.constructTotal.Add(ctx, 1, attrs)
	m.constructDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("ref", ref),
	))
}

// RecordCacheHit records a resolution served from the cache.
func (m *Metrics) RecordCacheHit(ctx context.Context, ref string) {
	m.cacheHitTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ref", ref),
	))
}

// RecordError records an error by type and reference.
func (m *Metrics) RecordError(ctx context.Context, errType, ref string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("ref", ref),
	))
}
