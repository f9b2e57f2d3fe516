package bootstrap

import (
	"github.com/kbukum/redisext/config"
)

// Config is the constraint for application config types. Structs embedding
// config.ServiceConfig satisfy it through promoted methods:
//
//	type Config struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Server server.Config `mapstructure:"server"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
