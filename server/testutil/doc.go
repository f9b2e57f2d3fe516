// Package testutil provides a test HTTP server backed by httptest.Server.
//
//	import roottest "github.com/kbukum/redisext/testutil"
//
//	srv := testutil.NewComponent()
//	srv.GinEngine().GET("/hello", handler)
//	roottest.T(t).Setup(srv)
//
//	resp, _ := http.Get(srv.BaseURL() + "/hello")
package testutil
