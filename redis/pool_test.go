package redis

import (
	"context"
	stderrors "errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestPool_BindShared(t *testing.T) {
	_, url := newMiniredis(t)
	pool, err := NewPool(url, Options{PoolSize: 5})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	if pool.Stats() != nil {
		t.Error("expected no stats before the first bind")
	}
	first, err := pool.Bind(3)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	second, err := pool.Bind(2)
	if err != nil {
		t.Fatalf("second Bind failed: %v", err)
	}
	if first != second {
		t.Error("expected binds to share one client")
	}
	if second.Options().Protocol != 3 {
		t.Errorf("expected the first protocol to win, got %d", second.Options().Protocol)
	}
	if err := first.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if stats := pool.Stats(); stats == nil || stats.TotalConns == 0 {
		t.Errorf("expected pooled connections, got %+v", stats)
	}
	if o := pool.Options(); o.PoolSize != 5 {
		t.Errorf("Options().PoolSize = %d, want 5", o.PoolSize)
	}
}

func TestPool_Close(t *testing.T) {
	_, url := newMiniredis(t)
	pool, err := NewPool(url, Options{})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	rdb, _ := pool.Bind(3)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := rdb.Ping(context.Background()).Err(); !stderrors.Is(err, goredis.ErrClosed) {
		t.Errorf("Ping on closed pool error = %v, want ErrClosed", err)
	}
	if _, err := pool.Bind(3); !stderrors.Is(err, goredis.ErrClosed) {
		t.Errorf("Bind after Close error = %v, want ErrClosed", err)
	}
}

func TestNewPool_InvalidURL(t *testing.T) {
	if _, err := NewPool("::not a url::", Options{}); err == nil {
		t.Fatal("expected error")
	}
}
