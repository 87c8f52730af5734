package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// CacheConfig defines settings for the public blog response cache.
// When Enabled is false or no Redis client is configured, caching is disabled
// and every read goes to the database.  TTL bounds how long a cached list or
// blog survives without an invalidating write.  Prefix namespaces the keys so
// that invalidation can sweep them, and MaxBodyBytes caps stored responses.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED" envDefault:"true"`
	TTL          time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	Prefix       string        `env:"CACHE_PREFIX" envDefault:"wizon:blogs"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES" envDefault:"1048576"`
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() (CacheConfig, error) {
	var cfg CacheConfig
	if err := env.Parse(&cfg); err != nil {
		return CacheConfig{}, fmt.Errorf("parse cache env: %w", err)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	return cfg, nil
}
