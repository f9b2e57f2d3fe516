package main

import (
	"fmt"
	"strings"

	"github.com/kbukum/redisext/bootstrap"
	"github.com/kbukum/redisext/config"
	"github.com/kbukum/redisext/observability"
	"github.com/kbukum/redisext/redis"
	"github.com/kbukum/redisext/server"
	"github.com/kbukum/redisext/version"
)

const serviceName = "redisext"

// Config is the process configuration, read from config.yml, .env and the
// environment. The Redis URL itself is the <PREFIX>_URL setting.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Redis   RedisConfig               `yaml:"redis" mapstructure:"redis"`
	Server  server.Config             `yaml:"server" mapstructure:"server"`
	Metrics observability.MeterConfig `yaml:"metrics" mapstructure:"metrics"`
}

// RedisConfig selects how the extension builds its client.
type RedisConfig struct {
	Prefix         string        `yaml:"prefix" mapstructure:"prefix"`
	Legacy         bool          `yaml:"legacy" mapstructure:"legacy"`
	ConnectionPool bool          `yaml:"connection_pool" mapstructure:"connection_pool"`
	Options        redis.Options `yaml:"options" mapstructure:"options"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = redis.DefaultPrefix
	}
	c.Redis.Prefix = strings.ToUpper(c.Redis.Prefix)
	c.Server.ApplyDefaults()

	defaults := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = defaults.ServiceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = c.Version
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = defaults.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = defaults.Interval
	}
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Options.Validate(); err != nil {
		return fmt.Errorf("redis.options: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	envFile    string
	url        string
	prefix     string
	legacy     bool
	pool       bool
}

// loadConfig reads settings and config, then applies flag overrides. The
// --url flag is written into settings so the extension reads it like any
// other <PREFIX>_URL value.
func loadConfig(flags *globalFlags) (*Config, *config.ViperSettings, error) {
	var loaderOpts []config.LoaderOption
	if flags.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(flags.configFile))
	}
	if flags.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(flags.envFile))
	}

	settings, err := config.LoadSettings(serviceName, loaderOpts...)
	if err != nil {
		return nil, nil, err
	}
	cfg := &Config{}
	if err := settings.Viper().Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("decode config: %w", err)
	}

	if flags.prefix != "" {
		cfg.Redis.Prefix = flags.prefix
	}
	if flags.legacy {
		cfg.Redis.Legacy = true
	}
	if flags.pool {
		cfg.Redis.ConnectionPool = true
	}
	cfg.ApplyDefaults()
	if flags.url != "" {
		settings.Set(cfg.Redis.Prefix+"_URL", flags.url)
	}
	return cfg, settings, nil
}

// newApp builds the host application and attaches a Redis extension to it.
func newApp(flags *globalFlags, opts ...bootstrap.Option) (*bootstrap.App[*Config], *redis.Extension, error) {
	cfg, settings, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}

	app, err := bootstrap.NewApp(cfg, append([]bootstrap.Option{bootstrap.WithSettings(settings)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}

	ext, err := redis.New(
		redis.WithConfigPrefix(cfg.Redis.Prefix),
		redis.WithStrict(!cfg.Redis.Legacy),
		redis.WithOptions(cfg.Redis.Options),
		redis.WithLogger(app.Logger),
	)
	if err != nil {
		return nil, nil, err
	}

	var attachOpts []redis.AttachOption
	if cfg.Redis.ConnectionPool {
		attachOpts = append(attachOpts, redis.WithConnectionPool())
	}
	if err := ext.AttachToApp(app, attachOpts...); err != nil {
		return nil, nil, fmt.Errorf("attach redis: %w", err)
	}
	return app, ext, nil
}
