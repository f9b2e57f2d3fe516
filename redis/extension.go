package redis

import (
	"context"
	stderrors "errors"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/kbukum/redisext/component"
	"github.com/kbukum/redisext/config"
	"github.com/kbukum/redisext/errors"
	"github.com/kbukum/redisext/logger"
)

const (
	// DefaultPrefix is the configuration key prefix used when none is given.
	DefaultPrefix = "REDIS"
	// DefaultURL is used when <PREFIX>_URL is not configured.
	DefaultURL = "redis://localhost:6379/0"
)

// ErrNotAttached is returned by every call made before AttachToApp.
var ErrNotAttached = errors.NotInitialized("redis")

// Host is the application an Extension attaches to.
type Host interface {
	// Settings is the configuration the URL is read from.
	Settings() config.Settings
	// Extensions is the registry the extension stores itself in.
	Extensions() *component.Registry
}

// Extension binds one Redis client to a host application. It holds no
// client until AttachToApp runs, and forwards the Client command surface
// to whatever client it holds.
type Extension struct {
	provider Provider
	options  Options
	prefix   string
	log      *logger.Logger

	mu     sync.RWMutex
	client Client
	pool   *Pool
}

type buildConfig struct {
	app     Host
	strict  bool
	prefix  string
	options Options
	log     *logger.Logger
}

// Option configures New and NewFromCustomProvider.
type Option func(*buildConfig)

// WithApp attaches the extension to app during construction.
func WithApp(app Host) Option {
	return func(c *buildConfig) { c.app = app }
}

// WithStrict selects the Strict provider when true and Legacy otherwise.
func WithStrict(strict bool) Option {
	return func(c *buildConfig) { c.strict = strict }
}

// WithLegacy selects the Legacy provider.
func WithLegacy() Option {
	return WithStrict(false)
}

// WithConfigPrefix sets the prefix of the URL setting and the registry name.
func WithConfigPrefix(prefix string) Option {
	return func(c *buildConfig) { c.prefix = prefix }
}

// WithOptions sets the options forwarded to the provider.
func WithOptions(opts Options) Option {
	return func(c *buildConfig) { c.options = opts }
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *buildConfig) { c.log = log }
}

func newBuildConfig(opts []Option) buildConfig {
	cfg := buildConfig{strict: true, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.GetGlobalLogger()
	}
	return cfg
}

func newExtension(cfg buildConfig) *Extension {
	provider := Strict
	if !cfg.strict {
		provider = Legacy
	}
	return &Extension{
		provider: provider,
		options:  cfg.options,
		prefix:   cfg.prefix,
		log:      cfg.log.WithComponent(strings.ToLower(cfg.prefix)),
	}
}

// New creates an extension. When WithApp is given it is attached before
// New returns; otherwise it holds no client until AttachToApp.
func New(opts ...Option) (*Extension, error) {
	cfg := newBuildConfig(opts)
	e := newExtension(cfg)
	if cfg.app != nil {
		if err := e.AttachToApp(cfg.app); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewFromCustomProvider creates an extension that builds its client with p.
// It panics if p is nil, including a nil pointer of a concrete provider type.
func NewFromCustomProvider(p Provider, opts ...Option) (*Extension, error) {
	if isNilProvider(p) {
		panic("redis: custom provider is nil")
	}
	cfg := newBuildConfig(opts)
	e := newExtension(cfg)
	e.provider = p
	if cfg.app != nil {
		if err := e.AttachToApp(cfg.app); err != nil {
			return nil, err
		}
	}
	return e, nil
}

type attachConfig struct {
	connectionPool bool
	extra          Options
}

// AttachOption configures AttachToApp.
type AttachOption func(*attachConfig)

// WithConnectionPool builds the client from a Pool instead of the URL.
func WithConnectionPool() AttachOption {
	return func(c *attachConfig) { c.connectionPool = true }
}

// WithExtraOptions merges opts over the stored options. Non-zero fields win
// and the merged result is kept for later attaches.
func WithExtraOptions(opts Options) AttachOption {
	return func(c *attachConfig) { c.extra = opts }
}

// AttachToApp builds a client from the <PREFIX>_URL setting of app and
// registers the extension in app's registry under the lowercased prefix.
// Attaching again replaces the client and closes the previous one. A
// different extension already registered under the same name is stopped.
// The provider runs without the extension's lock held.
func (e *Extension) AttachToApp(app Host, opts ...AttachOption) error {
	var ac attachConfig
	for _, opt := range opts {
		opt(&ac)
	}

	options, err := e.Options().merge(ac.extra)
	if err != nil {
		return err
	}

	rawURL := app.Settings().GetString(e.prefix+"_URL", DefaultURL)

	var (
		client Client
		pool   *Pool
	)
	if ac.connectionPool {
		client, pool, err = e.buildWithConnectionPool(rawURL, options)
	} else {
		client, err = e.provider.FromURL(rawURL, options)
	}
	if err != nil {
		return err
	}

	e.mu.Lock()
	prevClient, prevPool := e.client, e.pool
	e.options, e.client, e.pool = options, client, pool
	e.mu.Unlock()

	if prevClient != nil && !sameClient(prevClient, client) {
		if err := closeClient(prevClient, prevPool); err != nil {
			e.log.Warn("Failed to close replaced Redis client", logger.ErrorFields("close", err))
		}
	}

	if replaced := app.Extensions().Set(e); replaced != nil {
		if err := replaced.Stop(context.Background()); err != nil {
			e.log.Warn("Failed to stop replaced extension", logger.ErrorFields("stop", err))
		}
	}

	e.log.Info("Redis extension attached", logger.Fields(
		"url", redactURL(rawURL),
		"provider", providerName(e.provider),
		"connection_pool", ac.connectionPool,
	))
	return nil
}

func (e *Extension) buildWithConnectionPool(rawURL string, options Options) (Client, *Pool, error) {
	pool, err := NewPool(rawURL, options)
	if err != nil {
		return nil, nil, err
	}
	client, err := e.provider.FromPool(pool)
	if err != nil {
		_ = pool.Close()
		return nil, nil, err
	}
	return client, pool, nil
}

// Client returns the held client, or ErrNotAttached.
func (e *Extension) Client() (Client, error) {
	if c := e.current(); c != nil {
		return c, nil
	}
	return nil, ErrNotAttached
}

// Pool returns the pool the client was built from, or nil.
func (e *Extension) Pool() *Pool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pool
}

// Prefix returns the configuration key prefix.
func (e *Extension) Prefix() string { return e.prefix }

// Provider returns the provider clients are built with.
func (e *Extension) Provider() Provider { return e.provider }

// Options returns the options the next attach starts from.
func (e *Extension) Options() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.options
}

func (e *Extension) current() Client {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.client
}

// FromApp returns the extension registered in app under prefix.
func FromApp(app Host, prefix string) (*Extension, bool) {
	e, ok := app.Extensions().Get(strings.ToLower(prefix)).(*Extension)
	return e, ok
}

// sameClient reports whether a and b hold the same client. Clients whose
// dynamic value is not comparable are never the same.
func sameClient(a, b Client) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}

func isNilProvider(p Provider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func closeClient(client Client, pool *Pool) error {
	var errs []error
	if err := client.Close(); err != nil {
		errs = append(errs, err)
	}
	if pool != nil {
		errs = append(errs, pool.Close())
	}
	return stderrors.Join(errs...)
}

func providerName(p Provider) string {
	if s, ok := p.(interface{ String() string }); ok {
		return s.String()
	}
	return "custom"
}

func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid>"
	}
	return u.Redacted()
}
