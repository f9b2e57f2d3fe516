package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/redisext/logger"
)

// probePaths are polled by orchestrators and are not logged.
var probePaths = []string{"/health", "/livez", "/readyz"}

// RequestLogger logs every request with method, path, status and duration.
// 5xx logs at error, 4xx at warn, everything else at debug.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbe(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", duration.Milliseconds(),
			)
			if id := r.Header.Get(RequestIDHeader); id != "" {
				fields["request_id"] = id
			}
			if duration > 500*time.Millisecond {
				fields["slow"] = true
			}

			switch {
			case sw.status >= 500:
				log.Error("Request completed", fields)
			case sw.status >= 400:
				log.Warn("Request completed", fields)
			default:
				log.Debug("Request completed", fields)
			}
		})
	}
}

func isProbe(path string) bool {
	for _, p := range probePaths {
		if path == p || strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
