// Package config loads host settings from config.yml, .env files and the
// environment.
//
// Settings is the key lookup the redis extension reads its URL from.
// ViperSettings backs it with viper; MapSettings is an in-memory version
// for programmatic hosts and tests.
//
//	settings, err := config.LoadSettings("redisext")
//	url := settings.GetString("REDIS_URL", "redis://localhost:6379/0")
package config
