package redis

import (
	"time"

	"dario.cat/mergo"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisext/errors"
	"github.com/kbukum/redisext/validation"
)

// Options are client construction options forwarded to the provider.
// Zero fields leave the go-redis (or URL) value untouched.
type Options struct {
	// Username overrides the URL user.
	Username string `mapstructure:"username"`

	// Password overrides the URL password.
	Password string `mapstructure:"password"`

	// ClientName is sent with CLIENT SETNAME on every new connection.
	ClientName string `mapstructure:"client_name"`

	// PoolSize is the maximum number of socket connections.
	PoolSize int `mapstructure:"pool_size" validate:"gte=0"`

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int `mapstructure:"min_idle_conns" validate:"gte=0"`

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int `mapstructure:"max_idle_conns" validate:"gte=0"`

	// MaxActiveConns caps connections allocated by the pool. 0 means no limit.
	MaxActiveConns int `mapstructure:"max_active_conns" validate:"gte=0"`

	// MaxRetries before giving up. -1 disables retries.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=-1"`

	// MinRetryBackoff is the minimum backoff between retries (e.g. "8ms").
	MinRetryBackoff string `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff is the maximum backoff between retries (e.g. "512ms").
	MaxRetryBackoff string `mapstructure:"max_retry_backoff"`

	// DialTimeout is the timeout for establishing new connections (e.g. "5s").
	DialTimeout string `mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads (e.g. "3s").
	ReadTimeout string `mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes (e.g. "3s").
	WriteTimeout string `mapstructure:"write_timeout"`

	// PoolTimeout is how long a command waits for a free connection (e.g. "4s").
	PoolTimeout string `mapstructure:"pool_timeout"`

	// ConnMaxIdleTime closes connections idle for longer (e.g. "5m").
	ConnMaxIdleTime string `mapstructure:"conn_max_idle_time"`

	// ConnMaxLifetime closes connections older than this (e.g. "30m").
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

type durationField struct {
	name   string
	value  string
	target *time.Duration
}

func (o *Options) durationFields(dst *goredis.Options) []durationField {
	return []durationField{
		{"min_retry_backoff", o.MinRetryBackoff, &dst.MinRetryBackoff},
		{"max_retry_backoff", o.MaxRetryBackoff, &dst.MaxRetryBackoff},
		{"dial_timeout", o.DialTimeout, &dst.DialTimeout},
		{"read_timeout", o.ReadTimeout, &dst.ReadTimeout},
		{"write_timeout", o.WriteTimeout, &dst.WriteTimeout},
		{"pool_timeout", o.PoolTimeout, &dst.PoolTimeout},
		{"conn_max_idle_time", o.ConnMaxIdleTime, &dst.ConnMaxIdleTime},
		{"conn_max_lifetime", o.ConnMaxLifetime, &dst.ConnMaxLifetime},
	}
}

// Validate checks numeric bounds and that every duration parses.
func (o *Options) Validate() error {
	if err := validation.Validate(o); err != nil {
		return err
	}
	return o.applyDurations(&goredis.Options{})
}

func (o *Options) applyDurations(dst *goredis.Options) error {
	for _, f := range o.durationFields(dst) {
		if f.value == "" {
			continue
		}
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return errors.InvalidFormat(f.name, "duration such as 5s").WithCause(err)
		}
		*f.target = d
	}
	return nil
}

// merge returns o overridden by the non-zero fields of extra.
func (o Options) merge(extra Options) (Options, error) {
	merged := o
	if err := mergo.Merge(&merged, extra, mergo.WithOverride); err != nil {
		return o, errors.Internal(err)
	}
	return merged, nil
}

// apply writes the non-zero fields of o into dst.
func (o *Options) apply(dst *goredis.Options) error {
	if o.Username != "" {
		dst.Username = o.Username
	}
	if o.Password != "" {
		dst.Password = o.Password
	}
	if o.ClientName != "" {
		dst.ClientName = o.ClientName
	}
	if o.PoolSize != 0 {
		dst.PoolSize = o.PoolSize
	}
	if o.MinIdleConns != 0 {
		dst.MinIdleConns = o.MinIdleConns
	}
	if o.MaxIdleConns != 0 {
		dst.MaxIdleConns = o.MaxIdleConns
	}
	if o.MaxActiveConns != 0 {
		dst.MaxActiveConns = o.MaxActiveConns
	}
	if o.MaxRetries != 0 {
		dst.MaxRetries = o.MaxRetries
	}
	return o.applyDurations(dst)
}

// ParseURL parses a redis:// or rediss:// URL and applies opts on top.
// URL errors are returned as go-redis reports them.
func ParseURL(rawURL string, opts Options) (*goredis.Options, error) {
	if err := validation.Validate(&opts); err != nil {
		return nil, err
	}
	parsed, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := opts.apply(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}
