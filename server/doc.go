// Package server provides the HTTP server the key-value API runs on: a gin
// engine mounted on a ServeMux and served over HTTP/1.1 and h2c.
//
// Middleware (server/middleware) runs at the server level and covers every
// route: Recovery, RequestID, CORS, BodySizeLimit, RequestLogger and the
// optional OpenTelemetry Metrics recorder.
//
// Endpoints (server/endpoint): /health aggregates component health,
// /livez and /readyz serve orchestrator probes, /info reports the build.
//
// Component adapts a Server to the application component lifecycle.
package server
