package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisext/component"
	"github.com/kbukum/redisext/config"
	"github.com/kbukum/redisext/logger"
)

type testHost struct {
	settings config.MapSettings
	registry *component.Registry
}

func newTestHost(settings config.MapSettings) *testHost {
	if settings == nil {
		settings = config.MapSettings{}
	}
	return &testHost{settings: settings, registry: component.NewRegistryWithLogger(logger.Nop())}
}

func (h *testHost) Settings() config.Settings        { return h.settings }
func (h *testHost) Extensions() *component.Registry { return h.registry }

// newMiniredis starts an in-memory server and returns it with its URL.
func newMiniredis(t *testing.T) (*miniredis.Miniredis, string) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)
	return mini, "redis://" + mini.Addr() + "/0"
}

// newDirectClient returns a go-redis client talking to mini directly.
func newDirectClient(t *testing.T, mini *miniredis.Miniredis) *goredis.Client {
	t.Helper()
	rdb := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// newAttached returns an extension attached to a host pointing at mini.
func newAttached(t *testing.T, opts ...Option) (*Extension, *miniredis.Miniredis, *testHost) {
	t.Helper()
	mini, url := newMiniredis(t)
	host := newTestHost(config.MapSettings{"REDIS_URL": url})
	opts = append([]Option{WithApp(host), WithLogger(logger.Nop())}, opts...)
	ext, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = ext.Stop(t.Context()) })
	return ext, mini, host
}

// recordingProvider delegates to Strict and records what it was asked for.
type recordingProvider struct {
	urls  []string
	opts  []Options
	pools []*Pool
}

func (p *recordingProvider) FromURL(rawURL string, opts Options) (Client, error) {
	p.urls = append(p.urls, rawURL)
	p.opts = append(p.opts, opts)
	return Strict.FromURL(rawURL, opts)
}

func (p *recordingProvider) FromPool(pool *Pool) (Client, error) {
	p.pools = append(p.pools, pool)
	return Strict.FromPool(pool)
}

// mapClient is a value-type client whose dynamic value is not comparable.
type mapClient struct {
	Client
	data   map[string]string
	closed *int
}

func (c mapClient) Close() error {
	*c.closed++
	return nil
}

type valueProvider struct{ closed *int }

func (p valueProvider) FromURL(string, Options) (Client, error) {
	return mapClient{data: map[string]string{}, closed: p.closed}, nil
}

func (p valueProvider) FromPool(*Pool) (Client, error) {
	return p.FromURL("", Options{})
}

// reentrantProvider reads the extension's options while building a client.
type reentrantProvider struct {
	ext  *Extension
	seen []Options
}

func (p *reentrantProvider) FromURL(rawURL string, opts Options) (Client, error) {
	p.seen = append(p.seen, p.ext.Options())
	return Strict.FromURL(rawURL, opts)
}

func (p *reentrantProvider) FromPool(pool *Pool) (Client, error) {
	p.seen = append(p.seen, p.ext.Options())
	return Strict.FromPool(pool)
}
