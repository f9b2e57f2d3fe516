package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kbukum/redisext/observability"
)

// RouteFunc maps a request to a low-cardinality route label.
type RouteFunc func(r *http.Request) string

// Metrics records request count, duration and in-flight requests. A nil m
// disables the middleware. route defaults to the raw path.
func Metrics(m *observability.Metrics, route RouteFunc) Middleware {
	if m == nil {
		return nil
	}
	if route == nil {
		route = func(r *http.Request) string { return r.URL.Path }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			m.RecordRequestStart(ctx)
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			m.RecordRequestEnd(ctx, r.Method, route(r), strconv.Itoa(sw.status), time.Since(start))
			if sw.status >= 500 {
				m.RecordError(ctx, strconv.Itoa(sw.status), "http")
			}
		})
	}
}
