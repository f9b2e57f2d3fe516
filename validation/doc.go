// Package validation validates structs and single values with
// go-playground/validator and reports failures as *errors.AppError.
//
//	type Options struct {
//	    PoolSize int `mapstructure:"pool_size" validate:"gte=0"`
//	}
//	err := validation.Validate(opts)
//
// Field names in messages are taken from the mapstructure tag, so they
// match the configuration keys users write.
package validation
