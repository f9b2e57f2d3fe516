package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/redisext/config"
	"github.com/kbukum/redisext/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	settings        config.Settings
	gracefulTimeout *time.Duration
	summaryOutput   io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the application logger. By default it is initialized
// from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithSettings sets the settings extensions read. Defaults to the process
// environment.
func WithSettings(s config.Settings) Option {
	return func(o *appOptions) {
		o.settings = s
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithSummaryOutput sets where the startup summary is written.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOutput = w
	}
}
