// Package redis binds a go-redis client to a host application.
//
// An Extension is declared once and attached to each application that uses
// it. Attaching reads <PREFIX>_URL from the application's settings
// (default redis://localhost:6379/0), builds a client through a Provider
// and registers the extension under the lowercased prefix. Until then the
// extension holds no client and every call fails with ErrNotAttached.
//
//	ext, err := redis.New(redis.WithApp(app))
//	ext.Set(ctx, "greeting", "hello", 0)
//	v, err := ext.GetItem(ctx, "greeting")
//
// Extensions declared before the application exists attach later:
//
//	var cache, _ = redis.New(redis.WithConfigPrefix("CACHE"))
//	...
//	err := cache.AttachToApp(app, redis.WithConnectionPool())
//
// # Providers
//
// Strict (RESP3, the default) and Legacy (RESP2) build go-redis clients.
// NewFromCustomProvider accepts any other Provider, such as one backed by
// an in-memory server in tests.
//
// # Typed Operations
//
// TypedStore and GetJSON/SetJSON store JSON values over any Client:
//
//	store := redis.NewTypedStore[Session](ext, "sessions")
//	store.Save(ctx, id, &session, time.Hour)
package redis
