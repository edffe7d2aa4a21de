// Package observability provides optional OpenTelemetry tracing and metrics
// for harbor services. The bootstrap sequence itself stays observable
// through the logging pipeline; this package covers the request path.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("harbord"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("harbord"))
//	defer mp.Shutdown(ctx)
//
// The Gin middleware ties both to the HTTP surface:
//
//	engine.Use(observability.Middleware("harbord", metrics))
package observability
