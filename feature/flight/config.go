package flight

import "time"

// Config holds configuration for the remote flight-data collaborator.
type Config struct {
	// BaseURL is the flight-data API endpoint. Empty disables the feature;
	// registry lookups keep working on their own.
	BaseURL string `mapstructure:"base_url" default:""`
	// APIKey authenticates against the flight-data API.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds one remote call. A timeout surfaces as the
	// "unavailable" outcome.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// CacheSize is the maximum number of cached flight→registration results.
	// Zero or less disables the cache (coalescing stays active).
	CacheSize int `mapstructure:"cache_size" default:"4096"`
	// CacheTTLMinutes is how long a cached registration stays valid.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" default:"360"`
}

// Timeout returns the remote-call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
