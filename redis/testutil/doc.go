// Package testutil provides an in-memory Redis server for tests.
//
// Component runs miniredis and implements testutil.TestComponent. Its
// Provider builds clients for that server regardless of the URL a host
// configures, so extensions can be attached as in production:
//
//	import roottest "github.com/kbukum/redisext/testutil"
//
//	srv := testutil.NewComponent()
//	roottest.T(t).Setup(srv)
//
//	ext, _ := srv.Extension()
//	ext.AttachToApp(app)
//
// # State Management
//
//	roottest.T(t).Reset(srv)   // flushes all keys
package testutil
