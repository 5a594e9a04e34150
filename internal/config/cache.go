package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the upstream query cache. When Enabled is
// false or no Redis client is available, reads go straight to the upstream
// API. TTL is the lifetime of a cached read; RoleTTL applies to the role
// resolver's entries, which follow the default cache policy unless tuned.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	RoleTTL      time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		RoleTTL:      envDur("CACHE_ROLE_TTL", 5*time.Minute),
		Prefix:       envStr("CACHE_PREFIX", "q"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
	}
}

// KeyPrefix joins the configured prefix with a resource name, used when a
// whole resource's entries are invalidated at once.
func (c CacheConfig) KeyPrefix(resource string) string {
	return strings.Join([]string{c.Prefix, resource}, ":")
}
