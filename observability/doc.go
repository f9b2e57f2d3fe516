// Package observability provides OpenTelemetry metrics.
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("redisext"))
//	metrics.RecordRequestEnd(ctx, "GET", "/kv/*key", "200", duration)
//
// MeterComponent wraps the provider so an application's component registry
// starts and stops it.
package observability
