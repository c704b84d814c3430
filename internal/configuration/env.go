package configuration

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable the run reads,
// e.g. USAGE_SEASON_YEAR or USAGE_REDIS_ADDR.
const EnvPrefix = "USAGE_"

// ParseEnvFrom overlays USAGE_* variables from environ onto cfg. Variables
// that are unset leave the existing value untouched.
func ParseEnvFrom(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load builds the run configuration from defaults overlaid with environ.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func Load(environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	if err := ParseEnvFrom(cfg, environ); err != nil {
		return nil, err
	}
	return cfg, nil
}
