// Package observability provides OpenTelemetry tracing and metrics
// integration for apiwire. Exporter wiring is owned by the embedding
// application; the resolver only starts spans and records instruments
// against the global providers.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "apiwire.construct")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	metrics.RecordConstruct(ctx, "storage", "ok", duration)
package observability
