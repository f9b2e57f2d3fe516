package middleware

import "net/http"

// Middleware wraps an http.Handler. Every middleware in this package runs
// at the server level so it covers gin routes and raw mux handlers alike.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares. The first is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] != nil {
				final = middlewares[i](final)
			}
		}
		return final
	}
}
