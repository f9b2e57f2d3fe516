package redis

import (
	stderrors "errors"
	"sync"

	goredis "github.com/redis/go-redis/v9"
)

// Pool is a connection pool built from a URL. The first Bind materialises
// one go-redis client; later binds share its connections.
type Pool struct {
	opts   *goredis.Options
	mu     sync.Mutex
	rdb    *goredis.Client
	closed bool
}

// NewPool parses rawURL with opts applied. No connection is made.
func NewPool(rawURL string, opts Options) (*Pool, error) {
	parsed, err := ParseURL(rawURL, opts)
	if err != nil {
		return nil, err
	}
	return &Pool{opts: parsed}, nil
}

// Bind returns the client that owns the pool's connections, creating it
// with protocol on first use. The protocol of the first bind wins.
func (p *Pool) Bind(protocol int) (*goredis.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, goredis.ErrClosed
	}
	if p.rdb == nil {
		o := *p.opts
		o.Protocol = protocol
		p.rdb = goredis.NewClient(&o)
	}
	return p.rdb, nil
}

// Options returns a copy of the parsed connection options.
func (p *Pool) Options() goredis.Options {
	return *p.opts
}

// Stats returns connection statistics, or nil before the first Bind.
func (p *Pool) Stats() *goredis.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rdb == nil {
		return nil
	}
	return p.rdb.PoolStats()
}

// Close releases every pooled connection. Safe to call multiple times.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.rdb == nil {
		return nil
	}
	if err := p.rdb.Close(); err != nil && !stderrors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
