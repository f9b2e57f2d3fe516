package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Settings is an application's key lookup. Keys are case-insensitive.
type Settings interface {
	// Get returns the value stored under key, or def when key is unset.
	Get(key string, def any) any
	// GetString returns the value under key as a string, or def when key
	// is unset.
	GetString(key, def string) string
}

// ViperSettings exposes a viper instance as Settings. Environment
// variables are visible when AutomaticEnv is enabled on v.
type ViperSettings struct {
	v *viper.Viper
}

// NewViperSettings wraps v.
func NewViperSettings(v *viper.Viper) *ViperSettings {
	return &ViperSettings{v: v}
}

// NewEnvSettings returns settings backed only by the process environment.
func NewEnvSettings() *ViperSettings {
	v := viper.New()
	v.AutomaticEnv()
	return NewViperSettings(v)
}

func (s *ViperSettings) Get(key string, def any) any {
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.Get(key)
}

func (s *ViperSettings) GetString(key, def string) string {
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.GetString(key)
}

// Set overrides key. Useful for programmatic hosts and tests.
func (s *ViperSettings) Set(key string, value any) {
	s.v.Set(key, value)
}

// Viper returns the underlying viper instance.
func (s *ViperSettings) Viper() *viper.Viper {
	return s.v
}

// MapSettings is an in-memory Settings. Keys are matched
// case-insensitively.
type MapSettings map[string]any

func (m MapSettings) lookup(key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func (m MapSettings) Get(key string, def any) any {
	if v, ok := m.lookup(key); ok {
		return v
	}
	return def
}

func (m MapSettings) GetString(key, def string) string {
	if v, ok := m.lookup(key); ok {
		return cast.ToString(v)
	}
	return def
}

var (
	_ Settings = (*ViperSettings)(nil)
	_ Settings = MapSettings(nil)
)
