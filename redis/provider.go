package redis

import (
	goredis "github.com/redis/go-redis/v9"
)

// Provider builds clients. The built-in Strict and Legacy providers create
// go-redis clients; tests and alternative backends supply their own.
type Provider interface {
	// FromURL builds a client for rawURL with opts applied.
	FromURL(rawURL string, opts Options) (Client, error)
	// FromPool builds a client sharing pool's connections.
	FromPool(pool *Pool) (Client, error)
}

const (
	protocolRESP2 = 2
	protocolRESP3 = 3
)

var (
	// Strict speaks RESP3. It is the default provider.
	Strict Provider = protocolProvider{name: "strict", protocol: protocolRESP3}
	// Legacy speaks RESP2 for servers and proxies that predate RESP3.
	Legacy Provider = protocolProvider{name: "legacy", protocol: protocolRESP2}
)

type protocolProvider struct {
	name     string
	protocol int
}

func (p protocolProvider) FromURL(rawURL string, opts Options) (Client, error) {
	o, err := ParseURL(rawURL, opts)
	if err != nil {
		return nil, err
	}
	o.Protocol = p.protocol
	return goredis.NewClient(o), nil
}

func (p protocolProvider) FromPool(pool *Pool) (Client, error) {
	rdb, err := pool.Bind(p.protocol)
	if err != nil {
		return nil, err
	}
	return rdb, nil
}

func (p protocolProvider) String() string { return p.name }
