// Package testutil extends the component lifecycle with state controls for
// tests.
//
// A TestComponent can be registered like any component and additionally
// reset, snapshotted and restored between test cases:
//
//	func TestCache(t *testing.T) {
//	    testutil.T(t).Setup(srv)
//	    snap := testutil.T(t).Snapshot(srv)
//	    ...
//	    testutil.T(t).Restore(srv, snap)
//	}
package testutil
