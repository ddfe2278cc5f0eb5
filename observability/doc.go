// Package observability wires OpenTelemetry tracing and metrics for
// shaping pipelines.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("ingest"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("ingest")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewShapingMetrics(observability.Meter("ingest"), "orders")
//	th := stream.ThrottleInterval(src, clock, tcfg, 1, stream.WithObserver(m))
package observability
