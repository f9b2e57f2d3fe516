package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RegisterMetrics reports the connection pool statistics of e as
// observable gauges on meter. Nothing is observed while e is unattached
// or its client exposes no pool statistics.
func RegisterMetrics(meter metric.Meter, e *Extension) (metric.Registration, error) {
	type gauge struct {
		name, desc string
		inst       metric.Int64ObservableGauge
	}
	gauges := []*gauge{
		{name: "redis.pool.hits", desc: "Times a free connection was found in the pool"},
		{name: "redis.pool.misses", desc: "Times a free connection was not found in the pool"},
		{name: "redis.pool.timeouts", desc: "Times a wait for a connection timed out"},
		{name: "redis.pool.connections.total", desc: "Connections in the pool"},
		{name: "redis.pool.connections.idle", desc: "Idle connections in the pool"},
		{name: "redis.pool.connections.stale", desc: "Stale connections removed from the pool"},
	}

	instruments := make([]metric.Observable, 0, len(gauges))
	for _, g := range gauges {
		inst, err := meter.Int64ObservableGauge(g.name, metric.WithDescription(g.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s gauge: %w", g.name, err)
		}
		g.inst = inst
		instruments = append(instruments, inst)
	}

	attrs := metric.WithAttributes(attribute.String("redis.extension", e.Name()))
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		ps, ok := e.current().(interface{ PoolStats() *goredis.PoolStats })
		if !ok {
			return nil
		}
		stats := ps.PoolStats()
		values := []uint32{stats.Hits, stats.Misses, stats.Timeouts, stats.TotalConns, stats.IdleConns, stats.StaleConns}
		for i, g := range gauges {
			o.ObserveInt64(g.inst, int64(values[i]), attrs)
		}
		return nil
	}, instruments...)
}
